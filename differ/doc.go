/*
Package differ compares two versions of an API description document and
reports what was added, removed and changed.

# Overview

A comparison runs top-down over the document tree:

  - Paths are split into added, removed and common by key.
  - Each common path is compared method by method ([Differ.DiffEndpoint]).
  - Each method present on both sides is compared field by field
    ([Differ.DiffOperation]): summary, parameters, request body presence,
    tags and, optionally, response status codes.
  - Schema names, tag names and the server list are compared at document
    level, each independently toggleable.

Every list in a [DiffResult] is sorted, so two comparisons of the same
logical input serialize to identical bytes regardless of map order.

# Usage

The package provides two API styles:

 1. [DiffWithOptions] for one-off comparisons from files or decoded documents
 2. A [Differ] value for reuse across many comparisons

# Parameter Identity

By default parameters are matched by name alone, so a query parameter and
a path parameter with the same name collide and the later one wins. Use
[ParamIdentityNameIn] to match by name and location instead.

# Errors

A path entry or a considered method entry that is not shaped as expected
aborts the whole comparison with an [apierrors.DocumentError] or
[apierrors.MethodEntryError]; no partial result is returned. Method keys
outside the configured set are ignored, malformed or not.

# Example

	result, err := differ.DiffWithOptions(
		differ.WithSourceFilePath("api-v1.json"),
		differ.WithTargetFilePath("api-v2.yaml"),
	)
	if err != nil {
		log.Fatal(err)
	}
	for _, path := range result.AddedPaths() {
		fmt.Println("new endpoint:", path)
	}
	fmt.Printf("%d modified, %d unchanged\n", result.Stats.Modified, result.Stats.Unchanged)
*/
package differ
