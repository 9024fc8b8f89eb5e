// Package cpu implements the DCPU-16 processor, its assembler and its
// disassembler.
//
// The CPU has 65536 words of memory and eleven 16-bit registers: eight
// general purpose registers (a, b, c, x, y, z, i, j), the program counter
// (pc), the stack pointer (sp) and the overflow register (o). Instructions
// are one word with up to two following operand words.
//
// The engine, the assembler and the disassembler share one operand decode
// table, so instruction lengths always agree.
package cpu
