// Package models defines the core domain models for ShopHub.
//
// # Models
//
//   - User: a registered account as persisted in the user collection
//   - SessionUser: the password-free view of a User held as the current session
//   - Product: a read-only catalog entry, fetched once per session
//   - LineItem: one product in the cart together with its quantity
//   - Cart: the ordered line items plus the derived Count and TotalPrice
//   - OrderSummary: subtotal, shipping, tax and total shown at checkout
//
// # Design Principles
//
//  1. Derived values (Cart.Count, Cart.TotalPrice) are recomputed from the line
//     items, never mutated on their own.
//  2. Only LineItem slices are persisted for the cart; derived fields are rebuilt
//     on load.
//  3. Password hashes never leave the storage and auth layers: anything handed to
//     callers is a SessionUser.
package models
