package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistenzplus/backend/internal/payroll"
)

func TestMonthlyReportCSV(t *testing.T) {
	rows := []MonthlyReportRow{
		{
			EmployeeName: "Anna Müller",
			Username:     "a.mueller7",
			Totals: payroll.MonthlyTotals{
				PlannedHours: 160,
				WorkedHours:  158.5,
				NightHours:   21.33,
				SickDays:     1,
				SickHours:    8,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, MonthlyReportCSV(&buf, 6, 2025, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "Mitarbeiter;Benutzername;Monat;"))
	assert.Contains(t, lines[1], "Anna Müller;a.mueller7;06.2025")
	assert.Contains(t, lines[1], "158,50", "hours use a decimal comma")
	assert.Contains(t, lines[1], "21,33")
	assert.NotContains(t, lines[1], "158.5", "no decimal points in the export")
}

func TestTimesheetHTMLEscapesContent(t *testing.T) {
	doc := TimesheetDocument{
		ClientName: "Familie <Berger>",
		Month:      6,
		Year:       2025,
	}

	html, err := TimesheetHTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "Familie &lt;Berger&gt;")
	assert.Contains(t, html, "06/2025")
}
