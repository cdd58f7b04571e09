// Package winapi is the types.Backend backed by the native Windows registry
// API (advapi32). On other platforms every call fails with
// types.ErrUnsupportedPlatform.
package winapi
