package returns

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrStageIncomplete = errors.New("an earlier step of the return is not selected yet")
	ErrUnknownOrder    = errors.New("order does not belong to the selected customer")
	ErrUnknownProduct  = errors.New("product is not part of the selected order")
)

// Stage is the progress of a return through its selection steps.
type Stage int

const (
	StageNoCustomer Stage = iota
	StageCustomerSelected
	StageOrderSelected
	StageProductSelected
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageNoCustomer:
		return "no_customer"
	case StageCustomerSelected:
		return "customer_selected"
	case StageOrderSelected:
		return "order_selected"
	case StageProductSelected:
		return "product_selected"
	case StageReady:
		return "ready"
	}
	return "unknown"
}

// State is the return being edited. Fields belonging to a stage later
// than Stage are always zero.
type State struct {
	Stage        Stage
	Customer     Customer
	Orders       []Order
	Order        Order
	Lines        []LineItem
	Line         LineItem
	Quantity     int
	RefundAmount decimal.Decimal
	Reason       string
}

// NoProducts reports the "no products in this order" sub-state: an order
// is selected but none of its encodings yielded a line.
func (s State) NoProducts() bool {
	return s.Stage >= StageOrderSelected && len(s.Lines) == 0
}

// Snapshot holds the already fetched data a workflow reads from.
type Snapshot struct {
	Orders  []Order
	Catalog Catalog
}

// Action is a user step in the return workflow.
type Action interface {
	apply(state State, snap Snapshot) (State, error)
}

type (
	SelectCustomerAction struct{ Customer Customer }
	SelectOrderAction    struct{ OrderID ID }
	SelectProductAction  struct{ ProductID ID }
	SetQuantityAction    struct{ Requested int }
	SetReasonAction      struct{ Reason string }
	ResetAction          struct{}
)

// Reduce applies action to state. A rejected action returns the state
// unchanged together with the reason.
func Reduce(state State, snap Snapshot, action Action) (State, error) {
	next, err := action.apply(state, snap)
	if err != nil {
		return state, err
	}
	return next, nil
}

func (a SelectCustomerAction) apply(_ State, snap Snapshot) (State, error) {
	if a.Customer.ID.IsZero() {
		return State{}, ErrStageIncomplete
	}
	return State{
		Stage:    StageCustomerSelected,
		Customer: a.Customer,
		Orders:   FilterOrdersForCustomer(snap.Orders, a.Customer.ID),
	}, nil
}

func (a SelectOrderAction) apply(state State, snap Snapshot) (State, error) {
	if state.Stage < StageCustomerSelected {
		return State{}, ErrStageIncomplete
	}
	order, ok := FindOrder(state.Orders, a.OrderID)
	if !ok {
		return State{}, ErrUnknownOrder
	}
	return State{
		Stage:    StageOrderSelected,
		Customer: state.Customer,
		Orders:   state.Orders,
		Order:    order,
		Lines:    NormalizeOrderLines(order, snap.Catalog),
	}, nil
}

func (a SelectProductAction) apply(state State, _ Snapshot) (State, error) {
	if state.Stage < StageOrderSelected {
		return State{}, ErrStageIncomplete
	}
	line, ok := SelectProduct(state.Lines, a.ProductID)
	if !ok {
		return State{}, ErrUnknownProduct
	}
	quote := InitialQuote(line)
	return State{
		Stage:        StageProductSelected,
		Customer:     state.Customer,
		Orders:       state.Orders,
		Order:        state.Order,
		Lines:        state.Lines,
		Line:         line,
		Quantity:     quote.Quantity,
		RefundAmount: quote.RefundAmount,
	}, nil
}

func (a SetQuantityAction) apply(state State, _ Snapshot) (State, error) {
	if state.Stage < StageProductSelected {
		return State{}, ErrStageIncomplete
	}
	quote := SetQuantity(state.Line, a.Requested)
	state.Quantity = quote.Quantity
	state.RefundAmount = quote.RefundAmount
	state.Stage = readiness(state)
	return state, nil
}

func (a SetReasonAction) apply(state State, _ Snapshot) (State, error) {
	if state.Stage < StageProductSelected {
		return State{}, ErrStageIncomplete
	}
	state.Reason = strings.TrimSpace(a.Reason)
	state.Stage = readiness(state)
	return state, nil
}

func (ResetAction) apply(State, Snapshot) (State, error) { return State{}, nil }

func readiness(state State) Stage {
	if state.Quantity >= 1 && state.Reason != "" {
		return StageReady
	}
	return StageProductSelected
}

// Workflow is one open return dialog. It is not safe for concurrent use;
// separate dialogs use separate workflows over shared snapshots.
type Workflow struct {
	snap  Snapshot
	state State
}

// NewWorkflow starts a return with nothing selected.
func NewWorkflow(orders []Order, catalog Catalog) *Workflow {
	return &Workflow{snap: Snapshot{Orders: orders, Catalog: catalog}}
}

// State returns the current selection.
func (w *Workflow) State() State { return w.state }

// Dispatch applies action to the workflow.
func (w *Workflow) Dispatch(action Action) error {
	next, err := Reduce(w.state, w.snap, action)
	if err != nil {
		return err
	}
	w.state = next
	return nil
}

// Draft assembles the return once every step is complete.
func (w *Workflow) Draft() (ReturnSelection, error) {
	s := w.state
	if s.Stage != StageReady {
		return ReturnSelection{}, ErrStageIncomplete
	}
	return BuildReturnDraft(s.Customer, s.Order, s.Line, s.Reason, s.Quantity, s.RefundAmount), nil
}
