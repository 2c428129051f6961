package response

import (
	"time"

	"fractional-market/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type LotResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	TotalFractions     int32     `json:"total_fractions"`
	AvailableFractions int32     `json:"available_fractions"`
	PricePerFraction   string    `json:"price_per_fraction"`
	MinFractionsToBuy  int32     `json:"min_fractions_to_buy"`
	CreatedAt          time.Time `json:"created_at"`
}

// prices leave the API as fixed-point strings so clients never see float rounding
var lotCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(decimal.Decimal).StringFixed(2), nil
			},
		},
	},
}

func FromLotView(v *queries.LotView) (*LotResponse, error) {
	var resp LotResponse
	if err := copier.CopyWithOption(&resp, v, lotCopyOption); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromLotViews(views []*queries.LotView) ([]*LotResponse, error) {
	out := make([]*LotResponse, 0, len(views))
	for _, v := range views {
		resp, err := FromLotView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
