// Package mockbackend is an in-memory implementation of the library REST API
// for local runs and tests.
package mockbackend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bookshelf/storefront/internal/core/domain"
)

var (
	errInsufficientStock = errors.New("not enough copies in stock")
	errBadTransaction    = errors.New("malformed transaction")
)

type account struct {
	user domain.User
	hash []byte
}

// Library holds users, books and bills behind one lock.
type Library struct {
	mu sync.RWMutex

	users   map[int64]*account
	byEmail map[string]int64
	books   map[int64]domain.Book
	bills   map[int64]domain.Bill
	owned   map[int64][]int64

	nextUser int64
	nextBook int64
	nextBill int64

	now func() time.Time
}

func NewLibrary() *Library {
	return &Library{
		users:   make(map[int64]*account),
		byEmail: make(map[string]int64),
		books:   make(map[int64]domain.Book),
		bills:   make(map[int64]domain.Bill),
		owned:   make(map[int64][]int64),
		now:     time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- users ---

func (l *Library) addUser(u domain.User, hash []byte) (domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := emailKey(u.Email)
	if _, ok := l.byEmail[key]; ok {
		return domain.User{}, domain.ErrUserExists
	}
	l.nextUser++
	u.ID = l.nextUser
	u.Role = u.Role.Normalize()
	l.users[u.ID] = &account{user: u, hash: hash}
	l.byEmail[key] = u.ID
	return u, nil
}

func (l *Library) accountByEmail(email string) (domain.User, []byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	id, ok := l.byEmail[emailKey(email)]
	if !ok {
		return domain.User{}, nil, domain.ErrNotFound
	}
	a := l.users[id]
	return a.user, a.hash, nil
}

func (l *Library) User(id int64) (domain.User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return a.user, nil
}

func (l *Library) Users() []domain.User {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.User, 0, len(l.users))
	for _, a := range l.users {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// updateUser applies the non-empty fields of in. A nil hash keeps the password.
func (l *Library) updateUser(id int64, in domain.ProfileUpdate, hash []byte) (domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	if in.Email != "" && emailKey(in.Email) != emailKey(a.user.Email) {
		if _, taken := l.byEmail[emailKey(in.Email)]; taken {
			return domain.User{}, domain.ErrUserExists
		}
		delete(l.byEmail, emailKey(a.user.Email))
		l.byEmail[emailKey(in.Email)] = id
		a.user.Email = in.Email
	}
	if in.FullName != "" {
		a.user.FullName = in.FullName
	}
	if hash != nil {
		a.hash = hash
	}
	return a.user, nil
}

func (l *Library) SetRole(id int64, role domain.Role) (domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	a.user.Role = role.Normalize()
	return a.user, nil
}

func (l *Library) DeleteUser(id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(l.byEmail, emailKey(a.user.Email))
	delete(l.users, id)
	delete(l.owned, id)
	return nil
}

// --- books ---

func (l *Library) Books() []domain.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Book, 0, len(l.books))
	for _, b := range l.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (l *Library) Book(id int64) (domain.Book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.books[id]
	if !ok {
		return domain.Book{}, domain.ErrNotFound
	}
	return b, nil
}

func (l *Library) AddBook(in domain.BookInput) domain.Book {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextBook++
	b := bookFrom(l.nextBook, in)
	l.books[b.ID] = b
	return b
}

func (l *Library) UpdateBook(id int64, in domain.BookInput) (domain.Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.books[id]; !ok {
		return domain.Book{}, domain.ErrNotFound
	}
	b := bookFrom(id, in)
	l.books[id] = b
	return b, nil
}

func (l *Library) DeleteBook(id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.books[id]; !ok {
		return domain.ErrNotFound
	}
	delete(l.books, id)
	return nil
}

func bookFrom(id int64, in domain.BookInput) domain.Book {
	return domain.Book{
		ID:          id,
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Description: in.Description,
		Genre:       in.Genre,
		Pages:       in.Pages,
		PublishYear: in.PublishYear,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		RentalPrice: in.RentalPrice,
		Stock:       in.Stock,
		Available:   in.Stock > 0,
	}
}

// BooksOf lists the distinct books a user has bought or borrowed.
func (l *Library) BooksOf(userID int64) []domain.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Book, 0, len(l.owned[userID]))
	for _, id := range l.owned[userID] {
		if b, ok := l.books[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// --- bills ---

// CreateBill validates the whole request, then takes stock and records the
// bill in one step. Nothing changes when any line fails.
func (l *Library) CreateBill(req domain.TransactionRequest) (domain.Bill, error) {
	if len(req.Transactions) == 0 {
		return domain.Bill{}, fmt.Errorf("%w: no transactions", errBadTransaction)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	user, ok := l.users[req.User.ID]
	if !ok {
		return domain.Bill{}, domain.ErrNotFound
	}

	now := l.now().UTC()
	need := make(map[int64]int)
	txs := make([]domain.BillTransaction, 0, len(req.Transactions))
	var total float64

	for i, st := range req.Transactions {
		switch st.Type {
		case domain.TransactionPurchase:
			if len(st.Items) == 0 {
				return domain.Bill{}, fmt.Errorf("%w: purchase %d has no items", errBadTransaction, i)
			}
			tx := domain.BillTransaction{ID: int64(i + 1), Type: st.Type}
			for _, it := range st.Items {
				b, ok := l.books[it.Book.ID]
				if !ok {
					return domain.Bill{}, fmt.Errorf("book %d: %w", it.Book.ID, domain.ErrNotFound)
				}
				if it.Quantity < 1 {
					return domain.Bill{}, fmt.Errorf("%w: quantity %d", errBadTransaction, it.Quantity)
				}
				need[b.ID] += it.Quantity
				total += b.Price * float64(it.Quantity)
				tx.Items = append(tx.Items, domain.BillItem{Book: b, Quantity: it.Quantity, Price: b.Price})
			}
			txs = append(txs, tx)

		case domain.TransactionLoan:
			if st.Book == nil {
				return domain.Bill{}, fmt.Errorf("%w: loan %d has no book", errBadTransaction, i)
			}
			b, ok := l.books[st.Book.ID]
			if !ok {
				return domain.Bill{}, fmt.Errorf("book %d: %w", st.Book.ID, domain.ErrNotFound)
			}
			need[b.ID]++
			total += b.RentalPrice
			deadline := now.AddDate(0, domain.RentalPeriod, 0)
			txs = append(txs, domain.BillTransaction{ID: int64(i + 1), Type: st.Type, Book: &b, Deadline: &deadline})

		default:
			return domain.Bill{}, fmt.Errorf("%w: unknown type %q", errBadTransaction, st.Type)
		}
	}

	for id, n := range need {
		if b := l.books[id]; b.Stock < n {
			return domain.Bill{}, fmt.Errorf("%q: %w", b.Title, errInsufficientStock)
		}
	}
	for id, n := range need {
		b := l.books[id]
		b.Stock -= n
		b.Available = b.Stock > 0
		l.books[id] = b
		l.own(user.user.ID, id)
	}

	l.nextBill++
	bill := domain.Bill{
		ID:           l.nextBill,
		User:         domain.UserRef{ID: user.user.ID, FullName: user.user.FullName, Email: user.user.Email},
		Date:         now,
		Status:       domain.BillCompleted,
		Total:        math.Round(total*100) / 100,
		Transactions: txs,
	}
	l.bills[bill.ID] = bill
	return bill, nil
}

func (l *Library) own(userID, bookID int64) {
	for _, id := range l.owned[userID] {
		if id == bookID {
			return
		}
	}
	l.owned[userID] = append(l.owned[userID], bookID)
}

func (l *Library) Bill(id int64) (domain.Bill, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.bills[id]
	if !ok {
		return domain.Bill{}, domain.ErrNotFound
	}
	return b, nil
}

// Bills lists bills, optionally only those of one user, oldest first.
func (l *Library) Bills(userID int64) []domain.Bill {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Bill, 0)
	for _, b := range l.bills {
		if userID == 0 || b.User.ID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
