// Package batch applies one imaging operation across a list of source images.
//
// Each source goes through decode, transform, and PNG encode on its own. Items
// are processed one at a time in input order, so at most one decoded buffer
// (plus its transform output) is alive at once. A failure in any stage marks
// only that item as failed; the batch always runs to the end and returns a
// Report with one Item per source, in input order.
//
// # Operations
//
// The operation and its settings are a single Config value, one concrete type
// per operation:
//   - RemoveBackgroundConfig: color keying with tolerance and feather
//   - RemoveBackgroundAIConfig: delegated to a BackgroundRemover
//   - CropConfig: auto (content bounding box) or manual trim amounts
//   - SplitConfig: rows x cols grid, rows*cols outputs per source
//   - ResizeConfig: target size, optionally keeping the aspect ratio
//
// ParseConfig builds and normalizes a Config from an operation name and JSON
// settings, which is how the server and CLI enter this package.
//
// # Limits
//
// The orchestrator does not enforce batch size caps. Callers check limits
// (see config.Capabilities) before calling Run.
package batch
