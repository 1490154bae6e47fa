/*
Package widgeta is a collection of page widgets for server-rendered
applications: an ajax grid/table engine with filtering and pagination, a
form submission helper, a delete-confirmation flow, remote dropdowns, toast
notifications, a code input, an image preview and a locale switch.

Widgets bind to regions of existing markup through a headless document
model and talk to their endpoints through an injected transport, so the
whole set runs and tests without a browser. The module also ships the
matching Gin + GORM backend serving paginated envelopes and record
mutations from plain database tables.

See https://github.com/doyosi/widgeta for more information about widgeta.
*/
package widgeta // import "github.com/doyosi/widgeta"
