// Package config defines the format-agnostic raw model of a build
// configuration, along with the Loader interface implemented by each
// file-format adapter.
//
// The `config.Raw` is the single input of the `resolver` package. Concrete
// loaders, such as for HCL and YAML, are provided in separate packages so the
// resolver never depends on a file format.
package config
