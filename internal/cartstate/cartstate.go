// Package cartstate keeps the cart and wishlist client-side state. The
// backend never owns a cart; this store backs embedded deployments (kiosk
// mode) where the storefront and its state live on the same machine.
package cartstate

import (
	"errors"
	"sync"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Line struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type State struct {
	Cart     []Line `json:"cart"`
	Wishlist []uint `json:"wishlist"`
}

// Persister saves and restores the state between runs.
type Persister interface {
	Load() (*State, error)
	Save(state *State) error
}

type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
}

// NewStore restores state through the persister. A nil persister gives a
// purely in-memory store.
func NewStore(persister Persister) (*Store, error) {
	s := &Store{persister: persister}
	if persister != nil {
		state, err := persister.Load()
		if err != nil {
			return nil, err
		}
		if state != nil {
			s.state = *state
		}
	}
	return s, nil
}

func (s *Store) AddToCart(productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.state.Cart {
		if line.ProductID == productID {
			s.state.Cart[i].Quantity += quantity
			return s.persist()
		}
	}
	s.state.Cart = append(s.state.Cart, Line{ProductID: productID, Quantity: quantity})
	return s.persist()
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (s *Store) SetQuantity(productID uint, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.state.Cart {
		if line.ProductID == productID {
			if quantity == 0 {
				s.state.Cart = append(s.state.Cart[:i], s.state.Cart[i+1:]...)
			} else {
				s.state.Cart[i].Quantity = quantity
			}
			return s.persist()
		}
	}
	if quantity > 0 {
		s.state.Cart = append(s.state.Cart, Line{ProductID: productID, Quantity: quantity})
	}
	return s.persist()
}

func (s *Store) RemoveFromCart(productID uint) error {
	return s.SetQuantity(productID, 0)
}

func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Cart = nil
	return s.persist()
}

// ToggleWishlist flips a product in or out of the wishlist and reports
// whether it is now present.
func (s *Store) ToggleWishlist(productID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.state.Wishlist {
		if id == productID {
			s.state.Wishlist = append(s.state.Wishlist[:i], s.state.Wishlist[i+1:]...)
			return false, s.persist()
		}
	}
	s.state.Wishlist = append(s.state.Wishlist, productID)
	return true, s.persist()
}

// Snapshot returns a copy safe to hand out.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := State{
		Cart:     make([]Line, len(s.state.Cart)),
		Wishlist: make([]uint, len(s.state.Wishlist)),
	}
	copy(out.Cart, s.state.Cart)
	copy(out.Wishlist, s.state.Wishlist)
	return out
}

func (s *Store) persist() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Save(&s.state)
}
