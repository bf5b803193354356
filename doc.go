// Package apidiff compares two versions of an API description document and
// reports what changed between them.
//
// The module is organized in layers:
//
//   - apidoc: decode JSON or YAML documents into the normalized Document model
//   - differ: compare two Documents and produce a deterministic DiffResult
//   - report: render a DiffResult as text, JSON or YAML
//   - apierrors: the error types shared by the packages above
//
// The root package only carries build metadata.
//
// # Quick Start
//
//	result, err := differ.DiffWithOptions(
//		differ.WithSourceFilePath("api-v1.yaml"),
//		differ.WithTargetFilePath("api-v2.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, ep := range result.Modified {
//		fmt.Println(ep.Path)
//	}
//
// A comparison never mutates its inputs, and two runs over the same inputs
// produce identical results: every list in a DiffResult is sorted.
//
// # Command Line
//
// The apidiff command wraps the library:
//
//	apidiff diff api-v1.yaml api-v2.yaml
//	apidiff diff --format json --output changes.json api-v1.yaml api-v2.yaml
//	apidiff format swagger.json
//	apidiff mcp
package apidiff
