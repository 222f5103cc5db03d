package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/salarytax/internal/domain"
)

// WriteEmployeeTable renders registry rows as a bordered table
func WriteEmployeeTable(w io.Writer, records []domain.EmployeeRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No employees found.")
		return err
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{strconv.Itoa(r.ID), r.Name, FormatCurrency(r.GrossSalary)})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Gross Salary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			if col == 0 || col == 2 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
