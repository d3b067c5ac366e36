// Package hcl provides the HCL implementation of the config.Loader
// interface. It is responsible for file parsing, decoding into the schema
// structs, and translating them (including cty-valued dev_server
// attributes) into the format-agnostic config.Raw model.
package hcl
