// Package core provides the conversion logic from delimited media records to
// bulk-ingestion MRSS XML documents.
//
// This package has no CLI dependencies and can be driven by the command in
// cmd/mrssbulk, by other tools, or by tests without modification.
//
// # Pipeline
//
// A conversion is a single pass over the input with four stages:
//
//  1. [ResolveFields] maps the header row to a [FieldMap].
//  2. [CheckRow] rejects rows that are not valid UTF-8 (or are too short
//     to hold every mapped column). Rejected rows go to a [RejectSink].
//  3. [BuildItem] turns a validated row into an [Item].
//  4. [BatchWriter] accumulates Items and writes one numbered XML file per
//     batch of at most SplitSize items.
//
// [Converter.Run] wires the stages together:
//
//	conv := core.NewConverter(core.Options{
//	    BaseName:  "bulk_upload",
//	    OutDir:    "out",
//	    SplitSize: 200,
//	})
//	result, err := conv.Run(ctx, f)
//
// # Output Layout
//
// Batch files are named <base>_<NNN>.xml, numbered from 001 in input order.
// Rejected rows are appended to bad_rows.txt in the same directory, one row per
// line with the cells rejoined by ';'.
//
// # Error Handling
//
// Errors that abort the run (a header without one of the nine fields, a
// filesystem failure) are returned from [Converter.Run]. Row-level problems
// never abort the run; they are recorded in the reject log and counted in
// [Result].
package core
