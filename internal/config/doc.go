// Package config holds SpiderBot's configuration surface.
//
// Configuration flows from three places, lowest to highest precedence:
// built-in defaults (NewConfig), an optional YAML file (.spiderbot in
// the current or home directory, see FindConfigFile), and CLI flags.
// The merged result is validated once, before a crawl starts, with the
// same rules the crawl controller enforces so bad input fails fast at
// the command line.
package config
