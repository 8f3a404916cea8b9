package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/service"
)

const shopHelp = `Commands:
  books                      list the catalog
  book <id>                  show one book
  buy <id> [qty]             add a purchase (qty defaults to 1)
  loan <id>                  add a one-month loan
  remove purchases|loans <id>
  cart                       show the cart and its total
  clear                      empty the cart
  checkout                   submit the cart
  bills                      list your bills
  login | logout | whoami
  help | exit`

func newShopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Interactive shop; the cart lives until you exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := open(ctx, a)
			if err != nil {
				return err
			}
			defer rt.close()

			sh := newShell(rt.sf, cmd.InOrStdin(), cmd.OutOrStdout())
			return sh.loop(ctx)
		},
	}
}

var errExit = errors.New("exit")

// shell is the interactive shop loop around one Storefront.
type shell struct {
	sf  *service.Storefront
	p   *prompter
	out io.Writer
	now func() time.Time
}

func newShell(sf *service.Storefront, in io.Reader, out io.Writer) *shell {
	return &shell{sf: sf, p: newPrompter(in, out), out: out, now: time.Now}
}

func (s *shell) loop(ctx context.Context) error {
	fmt.Fprintln(s.out, "Welcome to the library storefront. Type `help` for commands.")
	if cur := s.sf.Session.Current(); cur.Authenticated {
		fmt.Fprintf(s.out, "Logged in as %s.\n", displayName(*cur.User))
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := s.p.line("\n> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		err = s.exec(ctx, line)
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}

// exec runs one command line.
func (s *shell) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		fmt.Fprintln(s.out, shopHelp)
	case "exit", "quit":
		return errExit
	case "books":
		books, err := s.sf.Catalog.ListBooks(ctx)
		if err != nil {
			return err
		}
		printBooks(s.out, books)
	case "book":
		id, err := argID(args, 0)
		if err != nil {
			return err
		}
		b, err := s.sf.Catalog.GetBook(ctx, id)
		if err != nil {
			return err
		}
		printBook(s.out, *b)
	case "buy":
		id, err := argID(args, 0)
		if err != nil {
			return err
		}
		qty := 1
		if len(args) > 1 {
			if qty, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
		}
		b, err := s.sf.AddPurchase(ctx, id, qty)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Added %dx %s. Total %s\n", qty, b.Title, domain.FormatAmount(s.sf.Cart.Total()))
	case "loan":
		id, err := argID(args, 0)
		if err != nil {
			return err
		}
		b, err := s.sf.AddLoan(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Added loan of %s. Total %s\n", b.Title, domain.FormatAmount(s.sf.Cart.Total()))
	case "remove", "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: remove purchases|loans <id>")
		}
		id, err := argID(args, 1)
		if err != nil {
			return err
		}
		if err := s.sf.Cart.Remove(domain.CartKind(args[0]), id); err != nil {
			return err
		}
		s.printCart()
	case "cart":
		s.printCart()
	case "clear":
		if err := s.sf.Cart.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Cart emptied")
	case "checkout":
		bill, err := s.sf.Checkout.Checkout(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Checkout complete.")
		printBill(s.out, *bill)
	case "bills":
		bills, err := s.sf.Billing.MyBills(ctx)
		if err != nil {
			return err
		}
		printBills(s.out, bills)
	case "login":
		return s.login(ctx, args)
	case "logout":
		if err := s.sf.Session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Logged out")
	case "whoami":
		cur := s.sf.Session.Current()
		if !cur.Authenticated {
			fmt.Fprintln(s.out, "Not logged in")
			return nil
		}
		fmt.Fprintf(s.out, "%s (%s)\n", displayName(*cur.User), cur.Role)
	default:
		return fmt.Errorf("unknown command %q, try `help`", cmd)
	}
	return nil
}

func (s *shell) login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = s.p.line("Email: "); err != nil {
			return err
		}
	}
	password, err := s.p.password("Password: ")
	if err != nil {
		return err
	}
	res, err := s.sf.Session.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Welcome, %s.\n", displayName(res.User))
	return nil
}

func (s *shell) printCart() {
	view := s.sf.View(s.now())
	if len(view.Purchases) == 0 && len(view.Loans) == 0 {
		fmt.Fprintln(s.out, "Cart is empty")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tTITLE\tQTY\tAMOUNT\tDUE")
	for _, p := range view.Purchases {
		fmt.Fprintf(tw, "purchase\t%d\t%s\t%d\t%s\t\n", p.BookID, p.Book.Title, p.Quantity, domain.FormatAmount(p.Subtotal()))
	}
	for _, l := range view.Loans {
		fmt.Fprintf(tw, "loan\t%d\t%s\t1\t%s\t%s\n", l.BookID, l.Book.Title, domain.FormatAmount(l.Book.RentalPrice), l.DueDate.Format("2006-01-02"))
	}
	_ = tw.Flush()
	fmt.Fprintf(s.out, "Total: %s\n", view.Total)
}

func argID(args []string, i int) (int64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing book id")
	}
	return parseID(args[i])
}
