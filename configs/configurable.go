package configs

import "reflect"

// Configurable types can be overridden from config by CueFork.
// ConfigExpr names the cue path holding the value.
type Configurable interface {
	ConfigExpr() string
}

var configurableType = reflect.TypeFor[Configurable]()
