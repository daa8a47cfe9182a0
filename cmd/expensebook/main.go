// Command expensebook is a small front end over the expense repository:
// it manages users and expense records and prints filtered reports. The
// repository does the real work; this binary only parses flags and
// renders results.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"expensebook/internal/backend"
	"expensebook/internal/cli"
	"expensebook/internal/core"
)

const (
	defaultFrom = "0001-01-01"
	defaultTo   = "9999-12-31"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cli.LoadEnvFile()
	bootLogger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.SetupLogger(cfg.LogLevel)
	repo, cleanup := cli.OpenRepository(logger, cfg)
	if cleanup != nil {
		defer cleanup()
	}

	code := run(repo, os.Args[1], os.Args[2:])
	os.Exit(code)
}

func run(repo backend.Repository, command string, args []string) int {
	switch command {
	case "users":
		return cmdUsers(repo)
	case "adduser":
		return cmdAddUser(repo, args)
	case "rmuser":
		return cmdRemoveUser(repo, args)
	case "add":
		return cmdAddExpense(repo, args)
	case "update":
		return cmdUpdateExpense(repo, args)
	case "delete":
		return cmdDeleteExpense(repo, args)
	case "list":
		return cmdList(repo, args)
	case "total":
		return cmdTotal(repo, args)
	case "count":
		return cmdCount(repo, args)
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: expensebook <command> [flags]

Commands:
  users                         list users
  adduser  -name N              add a user
  rmuser   -id ID               remove a user (expenses are kept)
  add      -user ID -date D -amount A -category C [-desc S]
  update   -id ID -user ID -date D -amount A -category C [-desc S]
  delete   -id ID               delete an expense
  list     -user ID [-from D] [-to D]   list expenses in range
  total    -user ID [-from D] [-to D]   sum amounts in range
  count    -user ID             count all expenses for a user

Dates use YYYY-MM-DD. Ranges are inclusive on both ends.
`)
}

func cmdUsers(repo backend.Repository) int {
	users := repo.ListUsers()
	if len(users) == 0 {
		fmt.Println("no users")
		return 0
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEXPENSES")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%d\n", u.ID, u.Name, repo.CountFor(u.ID))
	}
	w.Flush()
	return 0
}

func cmdAddUser(repo backend.Repository, args []string) int {
	fs := flag.NewFlagSet("adduser", flag.ExitOnError)
	name := fs.String("name", "", "user name")
	fs.Parse(args)

	id := repo.AddUser(*name)
	if id < 0 {
		fmt.Fprintln(os.Stderr, "add user failed: name is empty or already taken")
		return 1
	}
	fmt.Printf("added user %d\n", id)
	return 0
}

func cmdRemoveUser(repo backend.Repository, args []string) int {
	fs := flag.NewFlagSet("rmuser", flag.ExitOnError)
	id := fs.Int("id", -1, "user id")
	fs.Parse(args)

	if !repo.RemoveUser(*id) {
		fmt.Fprintf(os.Stderr, "no user with id %d\n", *id)
		return 1
	}
	fmt.Printf("removed user %d\n", *id)
	return 0
}

// expenseFlags gathers the record fields shared by add and update.
func expenseFlags(fs *flag.FlagSet) (user *int, date, amount, category, desc *string) {
	user = fs.Int("user", -1, "owning user id")
	date = fs.String("date", "", "date (YYYY-MM-DD)")
	amount = fs.String("amount", "", "amount")
	category = fs.String("category", "", "category")
	desc = fs.String("desc", "", "description")
	return
}

func parseExpense(user int, date, amount, category, desc string) (core.Expense, error) {
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	a, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return core.Expense{}, fmt.Errorf("invalid amount %q", amount)
	}
	return core.Expense{
		UserID:      user,
		Date:        d,
		Amount:      a,
		Category:    category,
		Description: desc,
	}, nil
}

func cmdAddExpense(repo backend.Repository, args []string) int {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	user, date, amount, category, desc := expenseFlags(fs)
	fs.Parse(args)

	e, err := parseExpense(*user, *date, *amount, *category, *desc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	id := repo.AddExpense(e)
	if id < 0 {
		fmt.Fprintln(os.Stderr, "add expense failed")
		return 1
	}
	fmt.Printf("added expense %d\n", id)
	return 0
}

func cmdUpdateExpense(repo backend.Repository, args []string) int {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int("id", -1, "expense id")
	user, date, amount, category, desc := expenseFlags(fs)
	fs.Parse(args)

	e, err := parseExpense(*user, *date, *amount, *category, *desc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	e.ID = *id
	if !repo.UpdateExpense(e) {
		fmt.Fprintf(os.Stderr, "no expense with id %d\n", *id)
		return 1
	}
	fmt.Printf("updated expense %d\n", *id)
	return 0
}

func cmdDeleteExpense(repo backend.Repository, args []string) int {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int("id", -1, "expense id")
	fs.Parse(args)

	if !repo.DeleteExpense(*id) {
		fmt.Fprintf(os.Stderr, "no expense with id %d\n", *id)
		return 1
	}
	fmt.Printf("deleted expense %d\n", *id)
	return 0
}

// rangeFlags parses -user/-from/-to; the range defaults to all time.
func rangeFlags(fs *flag.FlagSet, args []string) (int, core.Date, core.Date, error) {
	user := fs.Int("user", -1, "user id")
	fromStr := fs.String("from", defaultFrom, "start date (YYYY-MM-DD)")
	toStr := fs.String("to", defaultTo, "end date (YYYY-MM-DD)")
	fs.Parse(args)

	from, err := core.ParseDate(*fromStr)
	if err != nil {
		return 0, core.Date{}, core.Date{}, fmt.Errorf("invalid -from date %q", *fromStr)
	}
	to, err := core.ParseDate(*toStr)
	if err != nil {
		return 0, core.Date{}, core.Date{}, fmt.Errorf("invalid -to date %q", *toStr)
	}
	return *user, from, to, nil
}

func cmdList(repo backend.Repository, args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	user, from, to, err := rangeFlags(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	expenses := repo.GetExpenses(user, from, to)
	if len(expenses) == 0 {
		fmt.Println("no expenses")
		return 0
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n", e.ID, e.Date, e.Amount, e.Category, e.Description)
	}
	w.Flush()
	fmt.Printf("total: %.2f\n", repo.TotalFor(expenses))
	return 0
}

func cmdTotal(repo backend.Repository, args []string) int {
	fs := flag.NewFlagSet("total", flag.ExitOnError)
	user, from, to, err := rangeFlags(fs, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	fmt.Printf("%.2f\n", repo.TotalFor(repo.GetExpenses(user, from, to)))
	return 0
}

func cmdCount(repo backend.Repository, args []string) int {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	user := fs.Int("user", -1, "user id")
	fs.Parse(args)

	fmt.Printf("%d\n", repo.CountFor(*user))
	return 0
}
