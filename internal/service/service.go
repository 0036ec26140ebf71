// Package service books transactions and computes ledger views on top of the
// database.
//
// All calculations are done by package ledger. This package fetches the data
// it needs and persists the results.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInsufficientFunds = errors.New("the wallet balance is too low for this expense")

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return Service{db: db}
}

// CreateTransaction validates and books a draft.
//
// Expenses without a category label get the label of the first matching
// category rule. The label is resolved to an existing category or a new one
// is created. If creating the category fails, the transaction is booked
// without a category. The wallet balance, the transaction and its splits are
// written in a single database transaction.
func (s Service) CreateTransaction(ctx context.Context, d ledger.Draft) (models.Transaction, error) {
	db := s.db.WithContext(ctx)

	var group *ledger.Group
	if d.GroupID != nil {
		var g models.Group
		err := db.Preload("Members").First(&g, *d.GroupID).Error
		if err != nil {
			return models.Transaction{}, err
		}

		lg := g.Ledger()
		group = &lg
	}

	if d.NeedsCategory() && d.Label() == "" {
		label, err := s.ruleLabel(ctx, d.Description)
		if err != nil {
			return models.Transaction{}, err
		}
		d.Category = label
	}

	err := ledger.ValidateDraft(d, group)
	if err != nil {
		return models.Transaction{}, err
	}

	categoryID := d.CategoryID
	if d.NeedsCategory() {
		categoryID, err = s.resolveCategory(ctx, d.Label())
		if err != nil {
			return models.Transaction{}, err
		}
	}

	t := d.Transaction(categoryID)
	transaction := models.Transaction{
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        t.Date,
		WalletID:    t.WalletID,
		CategoryID:  t.CategoryID,
		GroupID:     t.GroupID,
		UserID:      t.UserID,
	}

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		var wallet models.Wallet
		err := tx.First(&wallet, t.WalletID).Error
		if err != nil {
			return err
		}

		balance := wallet.Balance.Add(ledger.Effect(t))
		if t.Type == ledger.Expense && balance.IsNegative() {
			return ErrInsufficientFunds
		}

		err = tx.Model(&wallet).Update("balance", balance).Error
		if err != nil {
			return err
		}

		err = tx.Create(&transaction).Error
		if err != nil {
			return err
		}

		for i, share := range ledger.Shares(t.Amount, t.SplitUserIDs) {
			split := models.ExpenseSplit{
				TransactionID: transaction.ID,
				UserID:        share.UserID,
				Position:      i,
				Amount:        share.Amount,
			}

			err = tx.Create(&split).Error
			if err != nil {
				return err
			}
			transaction.Splits = append(transaction.Splits, split)
		}

		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}

	log.Debug().
		Str("transaction", transaction.ID.String()).
		Str("wallet", transaction.WalletID.String()).
		Str("amount", transaction.Amount.String()).
		Int("splits", len(transaction.Splits)).
		Msg("transaction booked")

	return transaction, nil
}

// DeleteTransaction deletes a transaction with its splits and reverts its
// effect on the wallet balance.
func (s Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var transaction models.Transaction
		err := tx.First(&transaction, id).Error
		if err != nil {
			return err
		}

		var wallet models.Wallet
		err = tx.First(&wallet, transaction.WalletID).Error
		if err != nil {
			return err
		}

		balance := wallet.Balance.Sub(ledger.Effect(transaction.Ledger()))
		err = tx.Model(&wallet).Update("balance", balance).Error
		if err != nil {
			return err
		}

		err = tx.Where(&models.ExpenseSplit{TransactionID: transaction.ID}).Delete(&models.ExpenseSplit{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&transaction).Error
	})
}

// PreviewCategory resolves a label against the existing categories without
// creating anything.
func (s Service) PreviewCategory(ctx context.Context, label string) (ledger.Resolution, error) {
	categories, err := s.categories(ctx)
	if err != nil {
		return ledger.Resolution{}, err
	}

	return ledger.ResolveCategory(label, categories)
}

// resolveCategory returns the ID of the category for label, creating the
// category if needed. It returns nil if the category could not be created.
func (s Service) resolveCategory(ctx context.Context, label string) (*uuid.UUID, error) {
	r, err := s.PreviewCategory(ctx, label)
	if err != nil {
		return nil, err
	}

	if r.Found() {
		return &r.CategoryID, nil
	}

	category := models.Category{Name: r.Create.Name, Type: r.Create.Type}
	err = s.db.WithContext(ctx).Create(&category).Error
	if err != nil {
		log.Warn().Err(err).Str("label", label).Msg("category could not be created, booking transaction without category")
		return nil, nil
	}

	log.Info().Str("category", category.ID.String()).Str("name", category.Name).Msg("category created")
	return &category.ID, nil
}

// categories returns all categories in the order they were created.
func (s Service) categories(ctx context.Context) ([]ledger.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Ledger())
	}

	return out, nil
}

func (s Service) ruleLabel(ctx context.Context, description string) (string, error) {
	var rules []models.CategoryRule
	err := s.db.WithContext(ctx).Order("priority ASC, created_at ASC").Find(&rules).Error
	if err != nil {
		return "", err
	}

	lr := make([]ledger.Rule, 0, len(rules))
	for _, r := range rules {
		lr = append(lr, r.Ledger())
	}

	label, _ := ledger.RuleLabel(lr, description)
	return label, nil
}

// Snapshot fetches everything views are computed from.
func (s Service) Snapshot(ctx context.Context) (ledger.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var wallets []models.Wallet
	err := db.Order("name ASC").Find(&wallets).Error
	if err != nil {
		return ledger.Snapshot{}, err
	}

	categories, err := s.categories(ctx)
	if err != nil {
		return ledger.Snapshot{}, err
	}

	transactions, err := s.transactions(db)
	if err != nil {
		return ledger.Snapshot{}, err
	}

	snapshot := ledger.Snapshot{
		Wallets:      make([]ledger.Wallet, 0, len(wallets)),
		Categories:   categories,
		Transactions: transactions,
	}

	for _, w := range wallets {
		snapshot.Wallets = append(snapshot.Wallets, w.Ledger())
	}

	return snapshot, nil
}

// Transactions returns the transactions matching the filter, newest first.
func (s Service) Transactions(ctx context.Context, f ledger.Filter) ([]ledger.Transaction, error) {
	transactions, err := s.transactions(s.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return f.Apply(transactions), nil
}

// InitialValue returns the balance the wallet had before all of its
// transactions.
func (s Service) InitialValue(ctx context.Context, wallet models.Wallet) (decimal.Decimal, error) {
	transactions, err := s.transactions(s.db.WithContext(ctx).Where(&models.Transaction{WalletID: wallet.ID}))
	if err != nil {
		return decimal.Zero, err
	}

	return ledger.InitialValue(wallet.Ledger(), transactions), nil
}

// WalletValuations returns all wallets, ordered by name, with the balance
// each had before its recorded transactions.
func (s Service) WalletValuations(ctx context.Context) ([]ledger.WalletValuation, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return ledger.ValueWallets(snapshot.Wallets, snapshot.Transactions), nil
}

// Dashboard computes the dashboard view. Transactions in the view are
// filtered by f, all totals except the filtered summary cover everything.
func (s Service) Dashboard(ctx context.Context, f ledger.Filter) (ledger.View, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return ledger.View{}, err
	}

	return ledger.RecomputeView(snapshot, f), nil
}

// GroupTransactions returns the transactions of a group, newest first.
func (s Service) GroupTransactions(ctx context.Context, groupID uuid.UUID) ([]ledger.Transaction, error) {
	db := s.db.WithContext(ctx)

	err := db.First(&models.Group{}, groupID).Error
	if err != nil {
		return nil, err
	}

	return s.transactions(db.Where("group_id = ?", groupID))
}

// GroupBalances holds the reconciled balances of a group.
type GroupBalances struct {
	Group       models.Group
	Balances    []ledger.MemberBalance
	Settlements []ledger.Settlement
}

// GroupBalances reconciles the balances of all members of a group from the
// group's transactions.
func (s Service) GroupBalances(ctx context.Context, groupID uuid.UUID) (GroupBalances, error) {
	db := s.db.WithContext(ctx)

	group, err := s.Group(ctx, groupID)
	if err != nil {
		return GroupBalances{}, err
	}

	transactions, err := s.transactions(db.Where("group_id = ?", groupID))
	if err != nil {
		return GroupBalances{}, err
	}

	balances := ledger.Reconcile(transactions, group.LedgerMembers())

	return GroupBalances{
		Group:       group,
		Balances:    balances,
		Settlements: ledger.SettleUp(balances),
	}, nil
}

// Group returns a group with its members ordered by name.
func (s Service) Group(ctx context.Context, id uuid.UUID) (models.Group, error) {
	var group models.Group
	err := s.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("users.name ASC, users.id ASC")
		}).
		First(&group, id).Error

	return group, err
}

// CreateGroup creates a group. The creator is always a member.
func (s Service) CreateGroup(ctx context.Context, group models.Group, memberIDs []uuid.UUID) (models.Group, error) {
	ids := append([]uuid.UUID{group.CreatedByID}, memberIDs...)

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var members []models.User
		for _, id := range ids {
			if id == uuid.Nil {
				return fmt.Errorf("%w: the creator and members of a group must be set", ledger.ErrValidation)
			}

			var user models.User
			err := tx.First(&user, id).Error
			if err != nil {
				return err
			}

			if !containsUser(members, id) {
				members = append(members, user)
			}
		}

		group.Members = members
		return tx.Create(&group).Error
	})
	if err != nil {
		return models.Group{}, err
	}

	return s.Group(ctx, group.ID)
}

// AddMember adds a user to a group. Adding an existing member does nothing.
func (s Service) AddMember(ctx context.Context, groupID, userID uuid.UUID) (models.Group, error) {
	group, err := s.Group(ctx, groupID)
	if err != nil {
		return models.Group{}, err
	}

	var user models.User
	err = s.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		return models.Group{}, err
	}

	if !containsUser(group.Members, userID) {
		err = s.db.WithContext(ctx).Model(&group).Association("Members").Append(&user)
		if err != nil {
			return models.Group{}, err
		}
	}

	return s.Group(ctx, groupID)
}

// transaction runs fc in a database transaction. Failing to begin or commit
// it is reported as models.ErrGeneral.
func (s Service) transaction(ctx context.Context, fc func(tx *gorm.DB) error) error {
	return models.GeneralError(s.db.WithContext(ctx).Transaction(fc))
}

// transactions loads the transactions selected by db with their splits,
// newest first.
func (s Service) transactions(db *gorm.DB) ([]ledger.Transaction, error) {
	var transactions []models.Transaction
	err := models.WithSplits(db).Order("date DESC, created_at DESC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Transaction, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, t.Ledger())
	}

	return out, nil
}

func containsUser(users []models.User, id uuid.UUID) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
