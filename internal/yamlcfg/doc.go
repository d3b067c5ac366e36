// Package yamlcfg provides the YAML implementation of the config.Loader
// interface. Entry mappings are decoded node by node so that declaration
// order survives and duplicated entry names reach the resolver instead of
// failing inside the decoder.
package yamlcfg
