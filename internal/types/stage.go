// Package types provides type definitions for structured data used throughout the docforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Stage is a state of the per-call generation state machine:
//
//	Idle -> ValidatingInput -> ComposingBlocks -> Paginating -> Encoding -> Done
//
// Failed is reachable from ValidatingInput and Encoding only.
type Stage int

const (
	StageIdle Stage = iota
	StageValidatingInput
	StageComposingBlocks
	StagePaginating
	StageEncoding
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageValidatingInput:
		return "validating-input"
	case StageComposingBlocks:
		return "composing-blocks"
	case StagePaginating:
		return "paginating"
	case StageEncoding:
		return "encoding"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Next returns the stage that follows s on the success path.
func (s Stage) Next() Stage {
	switch s {
	case StageIdle:
		return StageValidatingInput
	case StageValidatingInput:
		return StageComposingBlocks
	case StageComposingBlocks:
		return StagePaginating
	case StagePaginating:
		return StageEncoding
	case StageEncoding:
		return StageDone
	default:
		return s
	}
}

// CanFail reports whether a failure may terminate the machine from s.
// Every other stage degrades instead of failing.
func (s Stage) CanFail() bool {
	return s == StageValidatingInput || s == StageEncoding
}
