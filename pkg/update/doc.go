// Package update provides small helpers for deciding whether a locally
// packaged version is the latest published release.
//
// It does not talk to the network and never installs anything. Callers fetch
// the latest release tag themselves and hand both strings to Decide.
//
// Comparators
//   - "exact" treats the versions as opaque identifiers: equal strings are up
//     to date, anything else is outdated. This is the default.
//   - "semver" parses both sides as semantic versions (a leading "v" is
//     accepted) so that "v1.2.0" and "1.2.0" compare equal and a local build
//     newer than the published release is reported as ahead rather than
//     outdated.
//
// "dev", "0.0.0-dev" and empty versions are not comparable and yield
// DecisionUnknown.
package update
