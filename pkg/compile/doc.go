// Package compile produces final document bytes. Compiler fills placeholder
// tokens inside an uploaded template package and optionally splices a
// synthesized requisites table before the closing body marker; Generator
// builds a complete package from plain body text when no template package is
// configured.
//
// Both paths are synchronous and stateless between invocations: output is a
// pure function of the template bytes, the normalized configuration and the
// input maps, with the clock carried explicitly in the system context.
package compile
