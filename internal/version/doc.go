// Package version reports the lookupkit build. Values are injected via
// -ldflags; binaries built without them (go install) fall back to
// runtime/debug.BuildInfo.
package version
