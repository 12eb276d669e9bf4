package source

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"voenrecon/internal/logger"
	"voenrecon/internal/recon"
	"voenrecon/internal/voen"
)

// Bank history layout: the bank exports an HTML table with an .xls name.
// The first 17 rows are account preamble; data cells are addressed by index.
const (
	bankPreambleRows = 17

	bankColVOEN        = 0
	bankColDate        = 1
	bankColType        = 2
	bankColAmount      = 3
	bankColDescription = 5

	// creditMarker flags incoming credits in the transaction-type column.
	creditMarker = "(+) CR"
)

var bankDateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"2006-01-02",
}

// BankHistoryReader loads incoming credits from the bank's statement export.
type BankHistoryReader struct {
	log zerolog.Logger
}

// NewBankHistoryReader creates a new bank history reader
func NewBankHistoryReader() *BankHistoryReader {
	return &BankHistoryReader{
		log: logger.WithComponent("bank-history-reader"),
	}
}

// Read loads the export at path and returns the incoming credits sorted
// ascending by date. Outgoing debits and malformed rows are dropped.
func (r *BankHistoryReader) Read(path string) ([]recon.Payment, error) {
	const op = "Read"

	r.log.Info().Str("file", path).Msg("Loading bank history")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open bank history %s: %w", op, path, err)
	}
	defer f.Close()

	payments, err := r.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}

	r.log.Info().
		Int("incoming_credits", len(payments)).
		Str("file", path).
		Msg("Bank history loaded")

	return payments, nil
}

// ReadFrom parses the HTML export from rd. The first table in the document
// holds the statement.
func (r *BankHistoryReader) ReadFrom(rd io.Reader) ([]recon.Payment, error) {
	const op = "ReadFrom"

	doc, err := html.Parse(rd)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse HTML: %w", op, err)
	}

	table := findFirstTable(doc)
	if table == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoTable)
	}

	rows := tableRows(table)
	if len(rows) <= bankPreambleRows {
		r.log.Warn().Int("rows", len(rows)).Msg("Bank history holds no data rows")
		return nil, nil
	}

	var payments []recon.Payment
	skipped := 0
	for i, row := range rows[bankPreambleRows:] {
		rowNum := bankPreambleRows + i + 1

		payment, ok := r.parseRow(row, rowNum)
		if !ok {
			skipped++
			continue
		}
		payments = append(payments, payment)
	}

	// Chronological processing order for the allocation engine. Stable, so
	// same-day credits keep their statement order.
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.Before(payments[j].Date)
	})

	r.log.Debug().
		Int("data_rows", len(rows)-bankPreambleRows).
		Int("kept", len(payments)).
		Int("skipped", skipped).
		Msg("Bank history rows parsed")

	return payments, nil
}

// parseRow normalizes a single statement row. Only incoming credits with a
// positive, parseable amount and a parseable date survive.
func (r *BankHistoryReader) parseRow(row []string, rowNum int) (recon.Payment, bool) {
	txType := cellString(row, bankColType)
	if !strings.Contains(txType, creditMarker) {
		return recon.Payment{}, false
	}

	rawDate := cellString(row, bankColDate)
	date, err := parseDate(rawDate, bankDateLayouts...)
	if err != nil {
		r.log.Warn().
			Err(err).
			Int("row", rowNum).
			Msg("Skipping credit with unparseable date")
		return recon.Payment{}, false
	}

	rawAmount := cellString(row, bankColAmount)
	amount, err := parseAmount(rawAmount)
	if err != nil {
		r.log.Warn().
			Err(err).
			Int("row", rowNum).
			Msg("Skipping credit with unparseable amount")
		return recon.Payment{}, false
	}
	if !amount.IsPositive() {
		r.log.Warn().
			Int("row", rowNum).
			Str("amount", amount.String()).
			Msg("Skipping credit with non-positive amount")
		return recon.Payment{}, false
	}

	payment := recon.Payment{
		VOEN:        voen.Normalize(cellString(row, bankColVOEN)),
		Date:        date,
		Amount:      amount,
		Description: cellString(row, bankColDescription),
	}
	return payment, true
}

// findFirstTable walks the document tree for the first <table> element.
func findFirstTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if table := findFirstTable(child); table != nil {
			return table
		}
	}
	return nil
}

// tableRows flattens a <table> into rows of cell texts. Both <td> and <th>
// cells count; nested markup inside a cell is reduced to its text.
func tableRows(table *html.Node) [][]string {
	var rows [][]string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for cell := n.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
					cells = append(cells, nodeText(cell))
				}
			}
			rows = append(rows, cells)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(table)

	return rows
}

// nodeText concatenates all text nodes beneath n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
