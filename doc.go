// Package shaderspec captures and replays the GPU state that shader
// translation depends on.
//
// # Overview
//
// Translating guest shader bytecode needs more than the instruction words:
// texture formats, sampler kinds, primitive topology, tessellation mode,
// alpha-test configuration, compute dimensions and transform feedback layout
// all come from GPU state that is bound at draw time, not encoded in the
// shader. A translated program cached on disk is therefore only reusable if
// every one of those translation-time queries can be answered exactly as it
// was answered when the program was first compiled.
//
// shaderspec provides:
//   - SpecializationState: a snapshot of every state fact that can influence
//     translation, recorded at compile time and used as the validity
//     fingerprint for the compiled program.
//   - StateAccessor: the query surface the translator calls, with two
//     implementations. LiveAccessor answers from current channel state while
//     capturing a fresh snapshot; ReplayAccessor answers from a previously
//     captured snapshot while building the fingerprint for the retranslated
//     program.
//   - ReplayProgram: a driver that replays all stages of a program against a
//     cached snapshot, one accessor per stage, in parallel.
//
// # Replay
//
// A cache load deserializes the old snapshot (persistence is out of scope
// here) and calls ReplayProgram with the per-stage code. The translator
// issues its queries through the accessor; each consumed fact is mirrored
// into the fresh snapshot, so the new fingerprint reflects the dependencies
// the program actually has. A query the old snapshot cannot satisfy fails
// the whole load with ErrMissingTextureDescriptor or ErrInvalidCbufLength,
// either in the call's return value or latched on the accessor and surfaced
// through Err, and the caller falls back to full retranslation. Replay
// never guesses: a wrong default would render incorrectly, a failed replay
// only recompiles.
//
// # Thread Safety
//
// One accessor serves exactly one stage. The old snapshot is read-only
// during replay and safe to share across stages; the fresh snapshot accepts
// concurrent per-stage recording.
package shaderspec
