// Package models defines the core domain models for splitroom.
//
// # Models
//
//   - Group: a room identified by its shareable room code
//   - Member: a person inside a room (append-only)
//   - Expense: one payment made by a member, split equally among members
//   - ExpenseSummary: derived per-member totals and net balance
//   - PaymentTransaction: derived debtor-to-creditor transfer
//
// Summaries and transactions are recomputed from the current ledger on
// demand; they are never persisted.
//
// # Design Principles
//
//  1. Amounts are integers in the smallest currency unit.
//  2. Derived balances are float64 so equal shares accumulate without
//     per-expense rounding.
//  3. Relationships use ID strings instead of pointers.
package models
