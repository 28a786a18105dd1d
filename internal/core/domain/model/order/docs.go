// Package order provides the Order aggregate and its lifecycle rules.
//
// The package includes:
//   - Order: the aggregate root holding product details, parties and lifecycle timestamps
//   - Status: the state machine Pending -> Completing -> Completed, with Canceled reachable
//     from Pending and Completing
//   - Validate* functions: the field rules shared by the aggregate and the commands
//
// Key business rules:
//   - productName is 5 to 60 characters long, productPrice is not negative and
//     productQuantity is an integer greater than 0
//   - creationDate is taken from the clock when the order is constructed
//   - completion is deferred: RequestCompletion schedules it and FinalizeCompletion
//     applies it once due, re-checking the state at that point
//   - completed and canceled are terminal; completionDate is set exactly when one is reached
//
// Construction collects every field violation into an *errs.ValidationError instead of
// stopping at the first one.
package order
