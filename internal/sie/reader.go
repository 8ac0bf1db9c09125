// Package sie reads SIE-style ledger exports: the chart of accounts, SRU
// codes, opening/closing/result balance declarations, and vouchers with
// their postings. The reader is permissive by contract: lines it does not
// recognize are skipped, and only a numeric field that fails to parse is
// reported, per field, without aborting the read.
package sie

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bokslut-dev/bokslut/internal/model"
)

// FieldError reports a field that occupied a numeric grammar position but
// did not parse as a number. The surrounding line is ignored.
type FieldError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("line %d: field %s: %v", e.Line, e.Field, e.Err)
}

// Company identifies the exporting entity, when declared.
type Company struct {
	OrgNr string
	Name  string
}

// FiscalYear is one declared accounting year range (#RAR). Offset 0 is the
// exported year, -1 the year before it.
type FiscalYear struct {
	Offset int
	Start  time.Time
	End    time.Time
}

// Document is one parsed ledger export.
type Document struct {
	Company  Company
	Years    map[int]FiscalYear
	Accounts map[int]model.Account
	Balances *model.BalanceSet
	Vouchers []model.Voucher
	Errors   []FieldError

	byKey map[model.VoucherKey]int
}

// Chart returns the declared accounts as a lookup service.
func (d *Document) Chart() *model.Chart {
	accounts := make([]model.Account, 0, len(d.Accounts))
	for _, a := range d.Accounts {
		accounts = append(accounts, a)
	}
	return model.NewChart(accounts)
}

// Voucher looks up a voucher by its (series, number) key.
func (d *Document) Voucher(series string, number int) (model.Voucher, bool) {
	i, ok := d.byKey[model.VoucherKey{Series: series, Number: number}]
	if !ok {
		return model.Voucher{}, false
	}
	return d.Vouchers[i], true
}

const voucherDateFormat = "20060102"

// Read parses a ledger export. The input must already be decoded to UTF-8
// with tabs and non-breaking spaces collapsed to plain spaces (see the
// charset package). Read fails only on I/O errors; data problems surface
// as skipped lines or per-field errors on the Document.
func Read(r io.Reader) (*Document, error) {
	doc := &Document{
		Years:    make(map[int]FiscalYear),
		Accounts: make(map[int]model.Account),
		Balances: model.NewBalanceSet(nil),
		byKey:    make(map[model.VoucherKey]int),
	}

	var (
		pending *model.Voucher // header seen, block not yet closed
		inBlock bool
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "{":
			if pending != nil {
				inBlock = true
			}
			continue
		case line == "}":
			if inBlock && pending != nil {
				doc.appendVoucher(*pending)
			}
			pending, inBlock = nil, false
			continue
		}

		f := newFields(line)
		tag, _ := f.next()
		switch tag {
		case "#KONTO":
			doc.readAccount(f, lineNo)
		case "#SRU":
			doc.readSRU(f, lineNo)
		case "#IB", "#UB", "#RES":
			doc.readBalance(model.BalanceKind(tag[1:]), f, lineNo)
		case "#ORGNR":
			if v, ok := f.next(); ok {
				doc.Company.OrgNr = v
			}
		case "#FNAMN":
			if v, ok := f.next(); ok {
				doc.Company.Name = v
			}
		case "#RAR":
			doc.readFiscalYear(f, lineNo)
		case "#VER":
			// An unclosed previous voucher is discarded, never
			// emitted half-open.
			pending, inBlock = nil, false
			if v, ok := doc.readVoucherHeader(f, lineNo); ok {
				pending = &v
			}
		case "#TRANS":
			if !inBlock || pending == nil {
				continue // posting outside a voucher block
			}
			if p, ok := doc.readPosting(f, lineNo); ok {
				pending.Postings = append(pending.Postings, p)
			}
		default:
			// Unrecognized line forms are skipped silently.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	// A voucher still open at EOF has no closing delimiter; it is dropped.
	return doc, nil
}

func (d *Document) appendVoucher(v model.Voucher) {
	d.byKey[v.Key()] = len(d.Vouchers)
	d.Vouchers = append(d.Vouchers, v)
}

func (d *Document) fieldErr(lineNo int, field, value string, err error) {
	d.Errors = append(d.Errors, FieldError{Line: lineNo, Field: field, Value: value, Err: err})
}

// intField parses a required integer field, recording a FieldError on
// failure.
func (d *Document) intField(f *fields, lineNo int, name string) (int, bool) {
	raw, ok := f.next()
	if !ok {
		return 0, false // missing field: malformed line, skipped silently
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		d.fieldErr(lineNo, name, raw, err)
		return 0, false
	}
	return n, true
}

func (d *Document) readAccount(f *fields, lineNo int) {
	id, ok := d.intField(f, lineNo, "account")
	if !ok {
		return
	}
	name, ok := f.next()
	if !ok {
		return
	}
	a := d.Accounts[id]
	a.ID = id
	a.Name = name
	d.Accounts[id] = a
}

func (d *Document) readSRU(f *fields, lineNo int) {
	id, ok := d.intField(f, lineNo, "account")
	if !ok {
		return
	}
	code, ok := d.intField(f, lineNo, "sru")
	if !ok {
		return
	}
	a := d.Accounts[id]
	a.ID = id
	a.SRU = code
	d.Accounts[id] = a
}

func (d *Document) readBalance(kind model.BalanceKind, f *fields, lineNo int) {
	offset, ok := d.intField(f, lineNo, "year")
	if !ok {
		return
	}
	account, ok := d.intField(f, lineNo, "account")
	if !ok {
		return
	}
	amount, ok := d.amountField(f, lineNo)
	if !ok {
		return
	}
	// Trailing quantity or free text after the amount is ignored.
	d.Balances.Add(model.BalanceDeclaration{
		Kind:       kind,
		YearOffset: offset,
		Account:    account,
		Amount:     amount,
	})
}

// amountField extracts a leading amount from the line remainder. Amounts
// may contain thousands spaces, so they are matched against the remainder
// rather than split into words.
func (d *Document) amountField(f *fields, lineNo int) (decimal.Decimal, bool) {
	raw, ok := f.amount()
	if !ok {
		return decimal.Zero, false
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		d.fieldErr(lineNo, "amount", raw, err)
		return decimal.Zero, false
	}
	return amount, true
}

func (d *Document) readFiscalYear(f *fields, lineNo int) {
	offset, ok := d.intField(f, lineNo, "year")
	if !ok {
		return
	}
	start, ok := d.dateField(f, lineNo, "start")
	if !ok {
		return
	}
	end, ok := d.dateField(f, lineNo, "end")
	if !ok {
		return
	}
	d.Years[offset] = FiscalYear{Offset: offset, Start: start, End: end}
}

func (d *Document) dateField(f *fields, lineNo int, name string) (time.Time, bool) {
	raw, ok := f.next()
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(voucherDateFormat, raw)
	if err != nil {
		d.fieldErr(lineNo, name, raw, err)
		return time.Time{}, false
	}
	return t, true
}

func (d *Document) readVoucherHeader(f *fields, lineNo int) (model.Voucher, bool) {
	series, ok := f.next()
	if !ok {
		return model.Voucher{}, false
	}
	number, ok := d.intField(f, lineNo, "number")
	if !ok {
		return model.Voucher{}, false
	}
	date, ok := d.dateField(f, lineNo, "date")
	if !ok {
		return model.Voucher{}, false
	}
	// Optional title: either one quoted field or the bare remainder.
	title, _ := f.nextOrRest()
	return model.Voucher{
		Series: series,
		Number: number,
		Date:   date,
		Title:  title,
	}, true
}

func (d *Document) readPosting(f *fields, lineNo int) (model.Posting, bool) {
	account, ok := d.intField(f, lineNo, "account")
	if !ok {
		return model.Posting{}, false
	}
	f.skipObjectList() // bracketed dimension references are not used here
	amount, ok := d.amountField(f, lineNo)
	if !ok {
		return model.Posting{}, false
	}
	// Optional trailing transaction date and quoted text are ignored.
	return model.Posting{Account: account, Amount: amount}, true
}
