package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// SellerSummary is one row of the seller picker table: how many
// listings a seller label has and the mean price across them.
type SellerSummary struct {
	Seller   string  `json:"seller"`
	Count    int     `json:"count"`
	AvgPrice float64 `json:"avg_price"`
}

// SellerStats holds the headline numbers for one seller.
type SellerStats struct {
	TotalListings  int     `json:"total_listings"`
	PricedListings int     `json:"priced_listings"`
	AvgPrice       float64 `json:"avg_price"`
	MinPrice       float64 `json:"min_price"`
	MaxPrice       float64 `json:"max_price"`
	Feedback       string  `json:"feedback"`
}

type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PriceBucket is one of the eight fixed price ranges. The top bucket is
// open-ended, flagged with open=true instead of serializing +Inf.
type PriceBucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max,omitempty"`
	Open  bool    `json:"open,omitempty"`
	Count int     `json:"count"`
}

// SellerAnalysis is the full derived view for one seller, the payload
// behind /api/analysis and the JSON download.
type SellerAnalysis struct {
	Seller       string          `json:"seller"`
	Stats        SellerStats     `json:"basic_stats"`
	Categories   []CategoryCount `json:"category_analysis"`
	Conditions   []CategoryCount `json:"condition_analysis,omitempty"`
	Currencies   []CategoryCount `json:"currency_analysis,omitempty"`
	PriceBuckets []PriceBucket   `json:"price_buckets"`
	GeneratedAt  string          `json:"generated_at"`
}

// Fixed price bucket boundaries: 0,10,20,30,40,50,75,100,∞.
// Buckets are (min, max] except the first, which includes 0 so a free
// listing still lands somewhere.
var priceBucketEdges = []struct {
	label    string
	min, max float64
}{
	{"$0-10", 0, 10},
	{"$10-20", 10, 20},
	{"$20-30", 20, 30},
	{"$30-40", 30, 40},
	{"$40-50", 40, 50},
	{"$50-75", 50, 75},
	{"$75-100", 75, 100},
	{"$100+", 100, math.Inf(1)},
}

// newPriceBuckets returns the eight empty buckets in display order.
func newPriceBuckets() []PriceBucket {
	out := make([]PriceBucket, len(priceBucketEdges))
	for i, e := range priceBucketEdges {
		out[i] = PriceBucket{Label: e.label, Min: e.min}
		if math.IsInf(e.max, 1) {
			out[i].Open = true
		} else {
			out[i].Max = e.max
		}
	}
	return out
}

// bucketIndex places a price into its bucket, -1 for negatives (which
// the parser never emits anyway).
func bucketIndex(price float64) int {
	for i, e := range priceBucketEdges {
		if i == 0 && price >= e.min && price <= e.max {
			return i
		}
		if price > e.min && price <= e.max {
			return i
		}
	}
	return -1
}

// BuildSellerSummaries aggregates listing counts and mean prices per
// seller, sorted by count desc, then name for a stable picker order.
func BuildSellerSummaries(ds *Dataset) []SellerSummary {
	counts := make(map[string]int)
	priceSums := make(map[string]float64)
	priceCounts := make(map[string]int)

	for i := range ds.Listings {
		l := &ds.Listings[i]
		if l.Seller == "" {
			continue
		}
		counts[l.Seller]++
		if l.Price != nil {
			priceSums[l.Seller] += *l.Price
			priceCounts[l.Seller]++
		}
	}

	out := make([]SellerSummary, 0, len(counts))
	for seller, n := range counts {
		s := SellerSummary{Seller: seller, Count: n}
		if pc := priceCounts[seller]; pc > 0 {
			s.AvgPrice = round2(priceSums[seller] / float64(pc))
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Seller < out[j].Seller
	})
	return out
}

// AnalyzeSeller computes the full per-seller analysis. Unknown seller
// labels are an error the handler turns into a 404.
func AnalyzeSeller(ds *Dataset, seller string) (*SellerAnalysis, error) {
	a := &SellerAnalysis{
		Seller:       seller,
		PriceBuckets: newPriceBuckets(),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	a.Stats.Feedback = "N/A"
	a.Stats.MinPrice = math.Inf(1)

	categoryCounts := make(map[string]int)
	conditionCounts := make(map[string]int)
	currencyCounts := make(map[string]int)
	var priceSum float64

	for i := range ds.Listings {
		l := &ds.Listings[i]
		if l.Seller != seller {
			continue
		}
		a.Stats.TotalListings++

		// Feedback is whatever the first row with one says.
		if a.Stats.Feedback == "N/A" && l.Feedback != "" {
			a.Stats.Feedback = l.Feedback
		}
		if l.Category != "" {
			categoryCounts[l.Category]++
		}
		if l.Condition != "" {
			conditionCounts[l.Condition]++
		}
		if l.Currency != "" {
			currencyCounts[strings.ToUpper(l.Currency)]++
		}

		if l.Price == nil {
			continue
		}
		p := *l.Price
		a.Stats.PricedListings++
		priceSum += p
		if p < a.Stats.MinPrice {
			a.Stats.MinPrice = p
		}
		if p > a.Stats.MaxPrice {
			a.Stats.MaxPrice = p
		}
		if bi := bucketIndex(p); bi >= 0 {
			a.PriceBuckets[bi].Count++
		}
	}

	if a.Stats.TotalListings == 0 {
		return nil, fmt.Errorf("unknown seller %q", seller)
	}
	if a.Stats.PricedListings > 0 {
		a.Stats.AvgPrice = round2(priceSum / float64(a.Stats.PricedListings))
		a.Stats.MinPrice = round2(a.Stats.MinPrice)
		a.Stats.MaxPrice = round2(a.Stats.MaxPrice)
	} else {
		a.Stats.MinPrice = 0
	}

	a.Categories = sortedCounts(categoryCounts)
	a.Conditions = sortedCounts(conditionCounts)
	a.Currencies = sortedCounts(currencyCounts)
	return a, nil
}

// sortedCounts turns a count map into a slice sorted by count desc,
// then label.
func sortedCounts(m map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(m))
	for k, v := range m {
		out = append(out, CategoryCount{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// -------- Listing table --------

// Allowed sort fields for the product table (prevents junk input).
var allowedSortFields = map[string]bool{
	"price": true, "title": true, "category": true, "listed_at": true,
}

// ListingPage is one page of the filtered product table.
type ListingPage struct {
	Listings   []Listing `json:"listings"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}

// SelectListings filters one seller's rows, sorts by an allowlisted
// field, and paginates. Default order is price desc; rows with
// missing prices always sort last.
func SelectListings(ds *Dataset, seller, sortField, dir, category string, page, limit int) *ListingPage {
	if !allowedSortFields[sortField] {
		sortField = "price"
	}
	desc := dir != "asc"
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	catFilter := strings.ToLower(strings.TrimSpace(category))

	rows := []Listing{}
	for i := range ds.Listings {
		l := ds.Listings[i]
		if l.Seller != seller {
			continue
		}
		if catFilter != "" && !strings.Contains(strings.ToLower(l.Category), catFilter) {
			continue
		}
		rows = append(rows, l)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		switch sortField {
		case "price":
			// Missing prices sink to the bottom regardless of direction.
			switch {
			case a.Price == nil && b.Price == nil:
				return false
			case a.Price == nil:
				return false
			case b.Price == nil:
				return true
			}
			if desc {
				return *a.Price > *b.Price
			}
			return *a.Price < *b.Price
		case "title":
			if desc {
				return a.Title > b.Title
			}
			return a.Title < b.Title
		case "category":
			if desc {
				return a.Category > b.Category
			}
			return a.Category < b.Category
		default: // listed_at — normalized timestamps sort lexically
			if desc {
				return a.ListedAt > b.ListedAt
			}
			return a.ListedAt < b.ListedAt
		}
	})

	total := len(rows)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &ListingPage{
		Listings:   rows[start:end],
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// SellerListings returns every row for one seller in upload order
// (export slices keep the source ordering).
func SellerListings(ds *Dataset, seller string) []Listing {
	var rows []Listing
	for i := range ds.Listings {
		if ds.Listings[i].Seller == seller {
			rows = append(rows, ds.Listings[i])
		}
	}
	return rows
}
