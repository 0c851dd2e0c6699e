// Package cli implements the interactive bank menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/kamaj/bank/pkg/domain"
	"github.com/kamaj/bank/pkg/domain/account"
	accountsvc "github.com/kamaj/bank/pkg/service/account"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	mainMenu = "What would you like to do?\n" +
		"  1. Open an account\n" +
		"  2. Make a transaction\n" +
		"  3. Exit\n" +
		"Enter option: "
	transactionMenu = "  1. Deposit\n" +
		"  2. Withdrawal\n" +
		"  3. Check balance\n" +
		"  4. Cancel transaction\n" +
		"Enter option: "
	anotherPrompt = "Will you like to perform another transaction? Y/N: "
)

// AccountService is the subset of the account service the menu drives.
type AccountService interface {
	EnsureSchema(ctx context.Context) error
	OpenAccount(ctx context.Context, name, pin string, initialDeposit decimal.Decimal) (*account.Account, error)
	Authenticate(ctx context.Context, name, pin string) (*accountsvc.Session, error)
	Currency() string
}

// Controller runs the menu loop over a line based input and an output writer.
type Controller struct {
	svc        AccountService
	in         *bufio.Scanner
	out        io.Writer
	bankName   string
	readSecret func() (string, error)
	validate   *validator.Validate
	logger     *slog.Logger
	title      cases.Caser

	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

// Option configures a Controller.
type Option func(*Controller)

// WithSecretReader sets the function used to read the PIN. It is called after
// the prompt has been written and must return the entered line without the newline.
func WithSecretReader(fn func() (string, error)) Option {
	return func(c *Controller) {
		c.readSecret = fn
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a Controller reading answers from in and writing prompts to out.
func New(svc AccountService, in io.Reader, out io.Writer, bankName string, opts ...Option) *Controller {
	c := &Controller{
		svc:      svc,
		in:       bufio.NewScanner(in),
		out:      out,
		bankName: bankName,
		validate: newValidator(),
		logger:   slog.Default(),
		title:    cases.Title(language.English),
		success:  color.New(color.FgGreen),
		warn:     color.New(color.FgYellow),
		fail:     color.New(color.FgRed),
	}
	c.readSecret = c.readLine
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run prepares the store and serves the menu until the user exits, declines
// another transaction, input ends or ctx is cancelled. Only a failure to
// prepare the store is returned as an error.
func (c *Controller) Run(ctx context.Context) error {
	c.println(c.success, "Welcome to "+c.bankName)
	if err := c.svc.EnsureSchema(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		choice, err := c.menuChoice(mainMenu)
		if isNotANumber(err) {
			c.println(c.warn, "Enter valid option")
			continue
		}
		if err != nil {
			return exitErr(ctx, err)
		}

		switch choice {
		case 1:
			if err := c.openAccount(ctx); err != nil {
				return exitErr(ctx, err)
			}
		case 2:
			done, err := c.transact(ctx)
			if err != nil {
				return exitErr(ctx, err)
			}
			if done {
				c.println(nil, "Goodbye!")
				return nil
			}
		case 3:
			c.println(nil, "Goodbye!")
			return nil
		default:
			c.println(c.warn, "Enter valid option")
		}
	}
}

func (c *Controller) openAccount(ctx context.Context) error {
	name, err := c.prompt("Enter your name: ")
	for err == nil && name == "" {
		name, err = c.prompt("Your name cannot be empty. Enter your name: ")
	}
	if err != nil {
		return err
	}

	pin, err := c.promptSecret("Enter your PIN (4 digits): ")
	for err == nil && !c.validPIN(pin) {
		pin, err = c.promptSecret("Your PIN must be 4 digits. Enter your PIN: ")
	}
	if err != nil {
		return err
	}

	deposit, err := c.promptAmount("Enter amount to deposit: ")
	if err != nil {
		return err
	}

	acct, err := c.svc.OpenAccount(ctx, name, pin, deposit)
	if err != nil {
		c.reportError(err)
		return nil
	}
	c.println(c.success, fmt.Sprintf("Account opened for %s. Your balance is %s",
		c.title.String(acct.Name), acct.FormatBalance(c.svc.Currency())))
	return nil
}

// transact authenticates and performs one transaction. done reports whether
// the user declined another transaction.
func (c *Controller) transact(ctx context.Context) (done bool, err error) {
	name, err := c.prompt("Enter your name: ")
	if err != nil {
		return false, err
	}
	pin, err := c.promptSecret("Enter your PIN: ")
	if err != nil {
		return false, err
	}

	session, err := c.svc.Authenticate(ctx, name, pin)
	if err != nil {
		c.reportError(err)
		return false, nil
	}
	c.println(c.success, "Welcome "+c.title.String(session.Name()))

	choice, err := c.menuChoice(transactionMenu)
	if isNotANumber(err) {
		c.println(c.warn, "Enter valid option")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch choice {
	case 1:
		if err := c.deposit(ctx, session); err != nil {
			return false, err
		}
	case 2:
		if err := c.withdraw(ctx, session); err != nil {
			return false, err
		}
	case 3:
		c.println(nil, session.CheckBalance())
	case 4:
		return false, nil
	default:
		c.println(c.warn, "Enter a valid option")
	}

	return c.declinesAnother()
}

func (c *Controller) deposit(ctx context.Context, session *accountsvc.Session) error {
	amount, err := c.promptAmount("Enter deposit amount: ")
	if err != nil {
		return err
	}
	if _, err := session.Deposit(amount); err != nil {
		c.reportError(err)
		return nil
	}
	c.println(c.success, fmt.Sprintf("Your new balance is %s.", session.FormatBalance()))
	if err := session.Persist(ctx); err != nil {
		c.reportError(err)
	}
	return nil
}

func (c *Controller) withdraw(ctx context.Context, session *accountsvc.Session) error {
	amount, err := c.promptAmount("Enter withdrawal amount: ")
	if err != nil {
		return err
	}
	if _, err := session.Withdraw(amount); err != nil {
		if errors.Is(err, account.ErrInsufficientFunds) {
			c.println(c.fail, "Insufficient balance. Your account balance is "+session.FormatBalance())
			return nil
		}
		c.reportError(err)
		return nil
	}
	c.println(c.success, fmt.Sprintf("Your new balance is %s.", session.FormatBalance()))
	if err := session.Persist(ctx); err != nil {
		c.reportError(err)
	}
	return nil
}

func (c *Controller) declinesAnother() (bool, error) {
	answer, err := c.prompt(anotherPrompt)
	for err == nil {
		switch strings.ToLower(answer) {
		case "y":
			return false, nil
		case "n":
			return true, nil
		}
		c.println(c.warn, "Please try again")
		answer, err = c.prompt(anotherPrompt)
	}
	return false, err
}

func (c *Controller) reportError(err error) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		c.println(c.fail, "Account not found.")
	case errors.Is(err, account.ErrAmountMustBePositive):
		c.println(c.fail, "Amount must be greater than zero.")
	case errors.Is(err, account.ErrBalanceLimit):
		c.logger.Warn("Balance limit reached", "error", err)
		c.println(c.fail, "Balance limit exceeded. Your balance cannot go above "+
			account.FormatAmount(c.svc.Currency(), account.MaxBalance)+".")
	case errors.Is(err, domain.ErrValidation):
		c.println(c.fail, "Invalid input: "+err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.logger.Error("Store unavailable", "error", err)
		c.println(c.fail, "Service unavailable, please try again later.")
	default:
		c.logger.Error("Operation failed", "error", err)
		c.println(c.fail, "Something went wrong, please try again.")
	}
}

func (c *Controller) menuChoice(menu string) (int, error) {
	line, err := c.prompt(menu)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(line)
}

func (c *Controller) promptAmount(msg string) (decimal.Decimal, error) {
	line, err := c.prompt(msg)
	for err == nil {
		if amount, ok := c.parseAmount(line); ok {
			return amount, nil
		}
		line, err = c.prompt("Please enter a valid amount: ")
	}
	return decimal.Zero, err
}

func (c *Controller) prompt(msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	return c.readLine()
}

func (c *Controller) promptSecret(msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	line, err := c.readSecret()
	return strings.TrimSpace(line), err
}

func (c *Controller) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Controller) println(col *color.Color, msg string) {
	if col == nil {
		fmt.Fprintln(c.out, msg)
		return
	}
	col.Fprintln(c.out, msg)
}

func isNotANumber(err error) bool {
	var numErr *strconv.NumError
	return errors.As(err, &numErr)
}

// exitErr drops the errors that just mean the user is gone: end of input, or
// input closed because ctx was cancelled.
func exitErr(ctx context.Context, err error) error {
	if errors.Is(err, io.EOF) || ctx.Err() != nil {
		return nil
	}
	return err
}
