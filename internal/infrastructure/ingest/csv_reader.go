// Package ingest parses bulk customer and loan data files into domain
// records. Files carry the upstream export's column headers; rows are keyed
// by their own IDs so downstream upserts stay idempotent.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-engine/internal/domain/model"
)

const dateLayout = "2006-01-02"

// ReadCustomers parses a customer data CSV. Ingested customers start with
// zero current debt; the upstream export does not carry a trustworthy debt
// figure.
func ReadCustomers(path string) ([]model.Customer, error) {
	rows, header, err := readAll(path)
	if err != nil {
		return nil, err
	}

	cols, err := header.indexes("Customer ID", "First Name", "Last Name", "Age", "Phone Number", "Monthly Salary", "Approved Limit")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	customers := make([]model.Customer, 0, len(rows))
	for i, row := range rows {
		c, err := parseCustomer(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// ReadLoans parses a loan data CSV.
func ReadLoans(path string) ([]model.Loan, error) {
	rows, header, err := readAll(path)
	if err != nil {
		return nil, err
	}

	cols, err := header.indexes("Customer ID", "Loan ID", "Loan Amount", "Tenure", "Interest Rate", "Monthly payment", "EMIs paid on Time", "Date of Approval", "End Date")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	loans := make([]model.Loan, 0, len(rows))
	for i, row := range rows {
		l, err := parseLoan(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		loans = append(loans, l)
	}
	return loans, nil
}

func parseCustomer(row []string, cols map[string]int) (model.Customer, error) {
	id, err := strconv.ParseInt(row[cols["Customer ID"]], 10, 64)
	if err != nil {
		return model.Customer{}, fmt.Errorf("customer id: %w", err)
	}
	age, err := strconv.Atoi(row[cols["Age"]])
	if err != nil {
		return model.Customer{}, fmt.Errorf("age: %w", err)
	}
	phone, err := strconv.ParseInt(row[cols["Phone Number"]], 10, 64)
	if err != nil {
		return model.Customer{}, fmt.Errorf("phone number: %w", err)
	}
	salary, err := decimal.NewFromString(row[cols["Monthly Salary"]])
	if err != nil {
		return model.Customer{}, fmt.Errorf("monthly salary: %w", err)
	}
	limit, err := decimal.NewFromString(row[cols["Approved Limit"]])
	if err != nil {
		return model.Customer{}, fmt.Errorf("approved limit: %w", err)
	}

	return model.Customer{
		ID:            id,
		FirstName:     row[cols["First Name"]],
		LastName:      row[cols["Last Name"]],
		Age:           age,
		PhoneNumber:   phone,
		MonthlySalary: salary,
		ApprovedLimit: limit,
		CurrentDebt:   decimal.Zero,
	}, nil
}

func parseLoan(row []string, cols map[string]int) (model.Loan, error) {
	customerID, err := strconv.ParseInt(row[cols["Customer ID"]], 10, 64)
	if err != nil {
		return model.Loan{}, fmt.Errorf("customer id: %w", err)
	}
	loanID, err := strconv.ParseInt(row[cols["Loan ID"]], 10, 64)
	if err != nil {
		return model.Loan{}, fmt.Errorf("loan id: %w", err)
	}
	amount, err := decimal.NewFromString(row[cols["Loan Amount"]])
	if err != nil {
		return model.Loan{}, fmt.Errorf("loan amount: %w", err)
	}
	tenure, err := strconv.Atoi(row[cols["Tenure"]])
	if err != nil {
		return model.Loan{}, fmt.Errorf("tenure: %w", err)
	}
	rate, err := decimal.NewFromString(row[cols["Interest Rate"]])
	if err != nil {
		return model.Loan{}, fmt.Errorf("interest rate: %w", err)
	}
	installment, err := decimal.NewFromString(row[cols["Monthly payment"]])
	if err != nil {
		return model.Loan{}, fmt.Errorf("monthly payment: %w", err)
	}
	paidOnTime, err := strconv.Atoi(row[cols["EMIs paid on Time"]])
	if err != nil {
		return model.Loan{}, fmt.Errorf("emis paid on time: %w", err)
	}
	start, err := time.Parse(dateLayout, row[cols["Date of Approval"]])
	if err != nil {
		return model.Loan{}, fmt.Errorf("date of approval: %w", err)
	}
	end, err := time.Parse(dateLayout, row[cols["End Date"]])
	if err != nil {
		return model.Loan{}, fmt.Errorf("end date: %w", err)
	}

	return model.Loan{
		ID:                 loanID,
		CustomerID:         customerID,
		Amount:             amount,
		TenureMonths:       tenure,
		InterestRate:       rate,
		MonthlyInstallment: installment,
		EMIsPaidOnTime:     paidOnTime,
		StartDate:          start,
		EndDate:            end,
	}, nil
}

// header maps column names to their positions.
type header map[string]int

func (h header) indexes(names ...string) (map[string]int, error) {
	cols := make(map[string]int, len(names))
	for _, name := range names {
		idx, ok := h[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[name] = idx
	}
	return cols, nil
}

func readAll(path string) ([][]string, header, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	headerRow, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header from %s: %w", path, err)
	}
	h := make(header, len(headerRow))
	for i, name := range headerRow {
		h[name] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read record from %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, h, nil
}
