// Package model defines the provider-neutral generation interface used to
// drive agent turns, plus a deterministic mock implementation for tests
// and examples.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Leave tool-call payloads in the raw carrier each provider actually
//     emits; normalization belongs to the extract package
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from
// this package so higher layers (agents, the engine) remain decoupled
// from vendor SDKs.
package model
