package device

import "github.com/rgl/ffp8/xerr"

// errNoInterface is QueryInterface's sole possible error: this layer
// identifies types positionally and never implements an interface
// other than its own.
var errNoInterface = xerr.InvalidArgument(prefix, "no such interface")
