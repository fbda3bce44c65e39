package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/devmarket/internal/client/services"
	"github.com/dmitrijs2005/devmarket/internal/client/transport"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Me(ctx context.Context) error
	Categories(ctx context.Context) error
	Models(ctx context.Context, args []string) error
	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Valuate(ctx context.Context, args []string) error
	Orders(ctx context.Context) error
	Buy(ctx context.Context, args []string) error
	Confirm(ctx context.Context, args []string) error
	Sell(ctx context.Context) error
	Users(ctx context.Context) error
}

const (
	guestHelp = "Available commands: register, login, help, exit"
	userHelp  = "Available commands: whoami, me, categories, models <category_id>, products [seller_id], " +
		"product <id>, valuate <model_id> <choice_id>..., orders, buy <product_id>, confirm <order_id>, " +
		"sell, users, logout, help, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
// The loop exits on EOF or when the user types "exit" or "quit". Command
// errors are printed and the loop continues; authorization failures also get
// a hint to log in. Prompts inside commands read from the same reader, so the
// REPL must not buffer ahead of them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(promptStyle.Render(fmt.Sprintf("devmarket (%s)> ", statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "me":
			cmdErr = a.Me(ctx)

		case "categories":
			cmdErr = a.Categories(ctx)
		case "models":
			cmdErr = a.Models(ctx, args)
		case "products":
			cmdErr = a.Products(ctx, args)
		case "product":
			cmdErr = a.Product(ctx, args)
		case "valuate":
			cmdErr = a.Valuate(ctx, args)

		case "orders":
			cmdErr = a.Orders(ctx)
		case "buy":
			cmdErr = a.Buy(ctx, args)
		case "confirm":
			cmdErr = a.Confirm(ctx, args)

		case "sell":
			cmdErr = a.Sell(ctx)
		case "users":
			cmdErr = a.Users(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			reportError(cmdErr)
		}
	}
}

func reportError(err error) {
	printlnFn(errorStyle.Render("Error: " + err.Error()))
	if errors.Is(err, transport.ErrUnauthorized) || errors.Is(err, services.ErrNotLoggedIn) {
		printlnFn(hintStyle.Render("You are not authorized. Type 'login' to sign in."))
	}
}
