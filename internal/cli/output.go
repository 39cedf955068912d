package cli

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/circuitlab/circuitlab/api/internal/domain"
)

// render writes v as indented JSON, or rows as a table
func (o *options) render(cmd *cobra.Command, v any, header []string, rows [][]string) error {
	out := cmd.OutOrStdout()
	if o.output == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	writeTable(out, header, rows)
	return nil
}

func writeTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{
		Left:   false,
		Right:  false,
		Top:    true,
		Bottom: true,
	})
	table.AppendBulk(rows)
	table.Render()
}

var (
	experimentHeader = []string{"ID", "Title", "Embed ID", "Completed", "Students"}
	userHeader       = []string{"ID", "Name", "Email", "Role"}
	progressHeader   = []string{"ID", "User", "Experiment", "Completed", "Score", "Time Spent", "Completed At"}
)

func experimentRows(experiments ...domain.Experiment) [][]string {
	rows := make([][]string, 0, len(experiments))
	for _, e := range experiments {
		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.Title,
			e.EmbedID,
			strconv.Itoa(e.Completed),
			strconv.Itoa(e.TotalStudents),
		})
	}
	return rows
}

func userRows(users ...domain.UserSummary) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, u.Email, string(u.Role)})
	}
	return rows
}

func progressRows(records ...domain.ProgressRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		completedAt := "-"
		if r.CompletedAt != nil {
			completedAt = r.CompletedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{
			r.ID,
			r.UserID,
			strconv.Itoa(r.ExperimentID),
			strconv.FormatBool(r.Completed),
			strconv.FormatFloat(r.Score, 'f', -1, 64),
			strconv.FormatFloat(r.TimeSpent, 'f', -1, 64),
			completedAt,
		})
	}
	return rows
}

var userDetailHeader = []string{"ID", "Name", "Email", "Role", "Completed", "Managed"}

func userDetailRows(u *domain.UserDetail) [][]string {
	return [][]string{{u.ID, u.Name, u.Email, string(u.Role), joinInts(u.CompletedExperiments), joinInts(u.ManagedExperiments)}}
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	s := strconv.Itoa(ids[0])
	for _, id := range ids[1:] {
		s += "," + strconv.Itoa(id)
	}
	return s
}
