// Package manifest interprets the inputs section of a protocol manifest. A
// Schema maps input names to TypeDescriptions; each description has a Kind
// that fixes which of its fields matter (nested Inputs for group and group+,
// Options for choice and group-choice). Four pure operations walk a schema:
//
//   - Defaults builds the value tree a fresh form starts from.
//   - Errors validates a value tree and returns an ErrorTree of the same shape.
//   - EntityIDs lists the container and compound identifiers a value tree
//     references so callers can prefetch them.
//   - FilterForClone prepares a captured value tree for resubmission.
//
// None of them return Go errors or keep state between calls; malformed
// schemas degrade to "no special handling" and Lint reports them separately.
// Decoding, sources and the Loader contract live here as well; concrete
// loaders are in internal/loader.
package manifest
