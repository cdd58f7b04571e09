// Package types defines the core types shared by the registry accessor and
// its backends: registry value types, root hives, access masks, the Value
// variant with its type inference, the typed error taxonomy and the Backend
// interface modelling the native registry API.
//
// Design goals:
//   - Values are a closed variant (binary / text / integer / strings);
//     type inference is a total match over it.
//   - Typed errors with stable categories (not found/access/connection/...),
//     matched with errors.Is against the exported sentinels.
//   - The Backend interface is one method per native registry call.
//
// This package has no dependencies beyond the standard library.
package types
