// Package compiler provides the tokenizer, parser and C++ generator for the
// cern language, plus the glue that hands generated code to a C++ compiler.
//
// Pipeline: cern source → Lex → Parse (arena-backed tree) → Generate → C++ text → Toolchain
package compiler
