// Package apierrors provides structured error types for apidiff.
//
// Import path: github.com/erraggy/apidiff/apierrors
//
// Every fatal condition raised while decoding or comparing API description
// documents is one of the types below, so callers can branch with
// [errors.Is] and [errors.As] instead of matching strings.
//
// # Error Types
//
//   - [DocumentError]: a document does not have the expected shape (invalid-document)
//   - [MethodEntryError]: a path's method value is not operation-shaped (invalid-method-entry)
//   - [ParseError]: the serialized input could not be read or decoded
//   - [ConfigError]: invalid options passed to the differ or the CLI
//
// # Sentinel Errors
//
//   - [ErrInvalidDocument]: Matches any [DocumentError]
//   - [ErrInvalidMethodEntry]: Matches any [MethodEntryError]
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("v1.json"),
//	    differ.WithTargetFilePath("v2.json"),
//	)
//	if errors.Is(err, apierrors.ErrInvalidMethodEntry) {
//	    var me *apierrors.MethodEntryError
//	    errors.As(err, &me)
//	    fmt.Printf("bad %s operation under %s\n", me.Method, me.Path)
//	}
//
// A comparison that fails never returns a partial result alongside the error.
package apierrors
