// Package cli provides the interactive devmarket command-line client.
//
// It wires configuration, the local token store, the HTTP API wrappers and
// the application services, then runs a read-eval-print loop. On start the
// stored session (if any) is restored and an expired access token is
// refreshed.
//
// Commands:
//   - register, login, logout, whoami, me
//   - categories, models <category_id>, products [seller_id], product <id>
//   - valuate <device_model_id> <choice_id>...
//   - orders, buy <product_id>, confirm <order_id>
//   - sell (the listing wizard: photos in, published product out)
//   - users (admin only)
//   - help, exit
//
// A failing command prints its error and the loop continues. Authorization
// failures additionally suggest logging in.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
