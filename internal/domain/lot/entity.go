package lot

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrLotInactive           = errors.New("lot is inactive")
	ErrOverRelease           = errors.New("release exceeds total fractions")
	ErrInvalidFractionCount  = errors.New("fraction count must be positive")
	ErrInvalidLot            = errors.New("invalid lot")
)

// Lot is a snapshot of a lot row. Authoritative reserve/release happens in storage
// as a conditional update; the methods here decide which error explains a refusal.
type Lot struct {
	id                 uuid.UUID
	title              string
	slug               string
	totalFractions     int32
	availableFractions int32
	pricePerFraction   decimal.Decimal
	active             bool
	createdAt          time.Time
	updatedAt          time.Time
}

func Reconstruct(
	id uuid.UUID,
	title, slug string,
	totalFractions, availableFractions int32,
	pricePerFraction decimal.Decimal,
	active bool,
	createdAt, updatedAt time.Time,
) (*Lot, error) {
	if totalFractions < 1 || availableFractions < 0 || availableFractions > totalFractions {
		return nil, ErrInvalidLot
	}
	if pricePerFraction.IsNegative() {
		return nil, ErrInvalidLot
	}
	return &Lot{
		id:                 id,
		title:              title,
		slug:               slug,
		totalFractions:     totalFractions,
		availableFractions: availableFractions,
		pricePerFraction:   pricePerFraction,
		active:             active,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (l *Lot) CheckReserve(count int32) error {
	if count <= 0 {
		return ErrInvalidFractionCount
	}
	if !l.active {
		return ErrLotInactive
	}
	if l.availableFractions < count {
		return ErrInsufficientInventory
	}
	return nil
}

// CheckRelease allows releases into inactive lots so failed payments can still return fractions.
func (l *Lot) CheckRelease(count int32) error {
	if count <= 0 {
		return ErrInvalidFractionCount
	}
	if int64(l.availableFractions)+int64(count) > int64(l.totalFractions) {
		return ErrOverRelease
	}
	return nil
}

func (l *Lot) Reserve(count int32) error {
	if err := l.CheckReserve(count); err != nil {
		return err
	}
	l.availableFractions -= count
	return nil
}

func (l *Lot) Release(count int32) error {
	if err := l.CheckRelease(count); err != nil {
		return err
	}
	l.availableFractions += count
	return nil
}

func (l *Lot) ID() uuid.UUID                     { return l.id }
func (l *Lot) Title() string                     { return l.title }
func (l *Lot) Slug() string                      { return l.slug }
func (l *Lot) TotalFractions() int32             { return l.totalFractions }
func (l *Lot) AvailableFractions() int32         { return l.availableFractions }
func (l *Lot) PricePerFraction() decimal.Decimal { return l.pricePerFraction }
func (l *Lot) IsActive() bool                    { return l.active }
func (l *Lot) CreatedAt() time.Time              { return l.createdAt }
func (l *Lot) UpdatedAt() time.Time              { return l.updatedAt }
