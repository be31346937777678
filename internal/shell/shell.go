// Package shell implements the interactive text menu on top of a ProductRepository.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rogerio-castellano/inventory-keeper/internal/repo"
)

const menu = "\n1) List  2) Add  3) Update  4) Remove  5) Search  6) Statistics  7) Exit"

type Shell struct {
	store     repo.ProductRepository
	in        *bufio.Scanner
	out       io.Writer
	threshold int
	logger    *slog.Logger
}

type Option func(*Shell)

// WithLowStockThreshold sets the quantity below which statistics count a product as low on stock.
func WithLowStockThreshold(n int) Option {
	return func(s *Shell) { s.threshold = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// New creates a shell reading answers from in and writing to out.
func New(store repo.ProductRepository, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store:     store,
		in:        bufio.NewScanner(in),
		out:       out,
		threshold: 5,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user exits or the input ends. Store failures are
// reported to the user and never end the session; only input errors are returned.
func (s *Shell) Run() error {
	defer fmt.Fprintln(s.out, "Goodbye!")

	for {
		fmt.Fprintln(s.out, menu)
		op, err := s.readLine("> ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch op {
		case "1":
			s.list()
		case "2":
			err = s.add()
		case "3":
			err = s.update()
		case "4":
			err = s.remove()
		case "5":
			err = s.search()
		case "6":
			s.stats()
		case "7":
			return nil
		default:
			s.warn("Invalid option.")
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) list() {
	fmt.Fprintln(s.out, RenderProducts(s.store.List()))
	fmt.Fprintf(s.out, "Total value: %s\n", formatMoney(s.store.TotalValue()))
}

func (s *Shell) add() error {
	code, err := s.readLine("Code: ")
	if err != nil {
		return err
	}
	if code == "" {
		s.warn("The code cannot be empty.")
		return nil
	}
	if s.store.Exists(code) {
		s.warn(fmt.Sprintf("A product with code %q already exists.", code))
		return nil
	}
	name, err := s.readLine("Name: ")
	if err != nil {
		return err
	}
	if name == "" {
		s.warn("The name cannot be empty.")
		return nil
	}
	price, err := s.promptFloat("Price: ", 0)
	if err != nil {
		return err
	}
	quantity, err := s.promptInt("Quantity: ", 0)
	if err != nil {
		return err
	}

	s.report(s.store.Add(code, name, price, quantity), "Product added.")
	return nil
}

func (s *Shell) update() error {
	code, err := s.readLine("Code to update: ")
	if err != nil {
		return err
	}
	current, err := s.store.Get(code)
	if err != nil {
		s.report(err, "")
		return nil
	}
	fmt.Fprintln(s.out, RenderProduct(current))

	var fields repo.ProductUpdate
	name, err := s.readLine("New name (empty = keep): ")
	if err != nil {
		return err
	}
	if name != "" {
		fields.Name = &name
	}
	if fields.Price, err = s.promptFloatOptional("New price (empty = keep): ", 0); err != nil {
		return err
	}
	if fields.Quantity, err = s.promptIntOptional("New quantity (empty = keep): ", 0); err != nil {
		return err
	}

	s.report(s.store.Update(code, fields), "Product updated.")
	return nil
}

func (s *Shell) remove() error {
	code, err := s.readLine("Code to remove: ")
	if err != nil {
		return err
	}
	p, err := s.store.Get(code)
	if err != nil {
		s.report(err, "")
		return nil
	}

	ok, err := s.confirm(fmt.Sprintf("Remove %s (%s)?", p.Code, p.Name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Cancelled.")
		return nil
	}

	s.report(s.store.Delete(code), "Product removed.")
	return nil
}

func (s *Shell) search() error {
	query, err := s.readLine("Search (code or name): ")
	if err != nil {
		return err
	}
	products, total := s.store.Filter(repo.ProductFilter{Query: query})
	fmt.Fprintln(s.out, RenderProducts(products))
	fmt.Fprintf(s.out, "%d match(es).\n", total)
	return nil
}

func (s *Shell) stats() {
	fmt.Fprint(s.out, RenderStats(repo.ComputeStats(s.store, s.threshold), s.threshold))
}

// report translates the result of a store operation into a message for the user.
func (s *Shell) report(err error, success string) {
	switch {
	case err == nil:
		fmt.Fprintln(s.out, okStyle.Render(success))
	case errors.Is(err, repo.ErrPersist):
		s.logger.Error("could not persist inventory", slog.Any("error", err))
		s.warn("Warning: the change was applied but could not be saved to disk.")
	case errors.Is(err, repo.ErrEmptyCode):
		s.warn("The code cannot be empty.")
	case errors.Is(err, repo.ErrProductNotFound):
		s.warn("Product not found.")
	case errors.Is(err, repo.ErrDuplicateCode):
		s.warn("A product with that code already exists.")
	default:
		fmt.Fprintln(s.out, errStyle.Render(fmt.Sprintf("Operation failed: %v", err)))
	}
}

func (s *Shell) warn(msg string) {
	fmt.Fprintln(s.out, warnStyle.Render(msg))
}
