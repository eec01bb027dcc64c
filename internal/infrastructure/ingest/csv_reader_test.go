package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCustomers(t *testing.T) {
	t.Run("parses rows by header name", func(t *testing.T) {
		path := writeFile(t, "customers.csv",
			"Customer ID,First Name,Last Name,Age,Phone Number,Monthly Salary,Approved Limit\n"+
				"1,Asha,Rao,34,9876543210,50000,1800000\n"+
				"2,Ravi,Menon,41,9876543211,75000,2700000\n")

		customers, err := ReadCustomers(path)
		require.NoError(t, err)
		require.Len(t, customers, 2)

		c := customers[0]
		assert.Equal(t, int64(1), c.ID)
		assert.Equal(t, "Asha", c.FirstName)
		assert.Equal(t, "Rao", c.LastName)
		assert.Equal(t, 34, c.Age)
		assert.Equal(t, int64(9876543210), c.PhoneNumber)
		assert.True(t, c.MonthlySalary.Equal(decimal.NewFromInt(50_000)))
		assert.True(t, c.ApprovedLimit.Equal(decimal.NewFromInt(1_800_000)))
		assert.True(t, c.CurrentDebt.IsZero())
	})

	t.Run("column order does not matter", func(t *testing.T) {
		path := writeFile(t, "customers.csv",
			"Approved Limit,Customer ID,Monthly Salary,First Name,Last Name,Age,Phone Number\n"+
				"1800000,1,50000,Asha,Rao,34,9876543210\n")

		customers, err := ReadCustomers(path)
		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, int64(1), customers[0].ID)
		assert.True(t, customers[0].ApprovedLimit.Equal(decimal.NewFromInt(1_800_000)))
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeFile(t, "customers.csv",
			"Customer ID,First Name,Last Name,Age,Phone Number,Monthly Salary\n"+
				"1,Asha,Rao,34,9876543210,50000\n")

		_, err := ReadCustomers(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Approved Limit")
	})

	t.Run("bad row aborts with its line number", func(t *testing.T) {
		path := writeFile(t, "customers.csv",
			"Customer ID,First Name,Last Name,Age,Phone Number,Monthly Salary,Approved Limit\n"+
				"1,Asha,Rao,34,9876543210,50000,1800000\n"+
				"two,Ravi,Menon,41,9876543211,75000,2700000\n")

		_, err := ReadCustomers(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 3")
	})
}

func TestReadLoans(t *testing.T) {
	t.Run("parses rows by header name", func(t *testing.T) {
		path := writeFile(t, "loans.csv",
			"Customer ID,Loan ID,Loan Amount,Tenure,Interest Rate,Monthly payment,EMIs paid on Time,Date of Approval,End Date\n"+
				"1,11,100000,24,10.5,4639.85,12,2023-08-01,2025-08-01\n")

		loans, err := ReadLoans(path)
		require.NoError(t, err)
		require.Len(t, loans, 1)

		l := loans[0]
		assert.Equal(t, int64(11), l.ID)
		assert.Equal(t, int64(1), l.CustomerID)
		assert.True(t, l.Amount.Equal(decimal.NewFromInt(100_000)))
		assert.Equal(t, 24, l.TenureMonths)
		assert.True(t, l.InterestRate.Equal(decimal.NewFromFloat(10.5)))
		assert.True(t, l.MonthlyInstallment.Equal(decimal.NewFromFloat(4639.85)))
		assert.Equal(t, 12, l.EMIsPaidOnTime)
		assert.Equal(t, time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC), l.StartDate)
		assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), l.EndDate)
	})

	t.Run("bad date aborts", func(t *testing.T) {
		path := writeFile(t, "loans.csv",
			"Customer ID,Loan ID,Loan Amount,Tenure,Interest Rate,Monthly payment,EMIs paid on Time,Date of Approval,End Date\n"+
				"1,11,100000,24,10.5,4639.85,12,01/08/2023,2025-08-01\n")

		_, err := ReadLoans(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "date of approval")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadLoans(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})
}
