package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"verkskra/internal/core"
	"verkskra/internal/mirror"
	ports "verkskra/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors ledger records into three sheets of one spreadsheet, one
// row per record with the id in column A. Rows are located by scanning the
// id column; the sheets are small enough that this beats keeping an index.
type Client struct {
	svc              *gsheet.Service
	spreadsheetID    string
	projectsSheet    string
	workEntriesSheet string
	materialsSheet   string
}

// Ensure interface conformance
var (
	_ ports.RecordWriter  = (*Client)(nil)
	_ ports.RecordDeleter = (*Client)(nil)
	_ ports.AllDataReader = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service-account credentials via
// GOOGLE_CREDENTIALS_JSON, GOOGLE_CREDENTIALS_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional sheet names: GOOGLE_PROJECTS_SHEET (default "Projects"),
// GOOGLE_WORK_ENTRIES_SHEET (default "WorkEntries"),
// GOOGLE_MATERIALS_SHEET (default "Materials").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:              svc,
		spreadsheetID:    spreadsheetID,
		projectsSheet:    envOr("GOOGLE_PROJECTS_SHEET", "Projects"),
		workEntriesSheet: envOr("GOOGLE_WORK_ENTRIES_SHEET", "WorkEntries"),
		materialsSheet:   envOr("GOOGLE_MATERIALS_SHEET", "Materials"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	credentialsJSON := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON"))
	credentialsFile := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_FILE"))
	if credentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentials []byte
	var err error
	switch {
	case credentialsJSON != "":
		credentials = []byte(credentialsJSON)
	case credentialsFile != "":
		credentials, err = os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_CREDENTIALS_JSON, GOOGLE_CREDENTIALS_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// findRow returns the 1-based row whose column A equals id, or 0.
func (c *Client) findRow(ctx context.Context, sheetName, id string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", rng, err)
	}
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == id {
			return i + 1, nil
		}
	}
	return 0, nil
}

// upsert writes the row for id: an existing row is updated in place, a new
// record is appended below the last one.
func (c *Client) upsert(ctx context.Context, sheetName, id string, values []any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	row, err := c.findRow(ctx, sheetName, id)
	if err != nil {
		return err
	}

	vr := &gsheet.ValueRange{Values: [][]any{values}}
	if row > 0 {
		rng := fmt.Sprintf("%s!A%d", sheetName, row)
		_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update row %d in %s: %w", row, sheetName, err)
		}
		return nil
	}

	rng := fmt.Sprintf("%s!A:A", sheetName)
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheetName, err)
	}
	return nil
}

// clearRow blanks the row for id. A missing id is fine: the delete may
// arrive before the save ever succeeded.
func (c *Client) clearRow(ctx context.Context, sheetName, id, lastCol string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	row, err := c.findRow(ctx, sheetName, id)
	if err != nil {
		return err
	}
	if row == 0 {
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:%s%d", sheetName, row, lastCol, row)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear row %d in %s: %w", row, sheetName, err)
	}
	return nil
}

func (c *Client) UpsertProject(ctx context.Context, r mirror.ProjectRecord) error {
	return c.upsert(ctx, c.projectsSheet, r.ID,
		[]any{r.ID, r.Name, r.Client, r.Address, r.HourlyRate, r.Status, r.CreatedAt})
}

func (c *Client) UpsertWorkEntry(ctx context.Context, r mirror.WorkEntryRecord) error {
	return c.upsert(ctx, c.workEntriesSheet, r.ID,
		[]any{r.ID, r.ProjectID, r.Date, r.StartTime, r.EndTime, r.Hours, r.Notes})
}

func (c *Client) UpsertMaterial(ctx context.Context, r mirror.MaterialRecord) error {
	return c.upsert(ctx, c.materialsSheet, r.ID,
		[]any{r.ID, r.ProjectID, r.Date, r.Name, r.Quantity, r.Amount})
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.clearRow(ctx, c.projectsSheet, id, "G")
}

func (c *Client) DeleteWorkEntry(ctx context.Context, id string) error {
	return c.clearRow(ctx, c.workEntriesSheet, id, "G")
}

func (c *Client) DeleteMaterial(ctx context.Context, id string) error {
	return c.clearRow(ctx, c.materialsSheet, id, "F")
}

// ReadAll reads the three sheets into one snapshot. Blank rows left behind
// by deletes are skipped.
func (c *Client) ReadAll(ctx context.Context) (*mirror.AllData, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	data := &mirror.AllData{}

	projects, err := c.readRows(ctx, c.projectsSheet, "A:G")
	if err != nil {
		return nil, err
	}
	for _, cols := range projects {
		data.Projects = append(data.Projects, mirror.ProjectRecord{
			ID:         safeGet(cols, 0),
			Name:       safeGet(cols, 1),
			Client:     safeGet(cols, 2),
			Address:    safeGet(cols, 3),
			HourlyRate: parseNumber(safeGet(cols, 4)),
			Status:     safeGet(cols, 5),
			CreatedAt:  safeGet(cols, 6),
		})
	}

	work, err := c.readRows(ctx, c.workEntriesSheet, "A:G")
	if err != nil {
		return nil, err
	}
	for _, cols := range work {
		data.WorkEntries = append(data.WorkEntries, mirror.WorkEntryRecord{
			WorkEntry: core.WorkEntry{
				ID:        safeGet(cols, 0),
				Date:      safeGet(cols, 2),
				StartTime: safeGet(cols, 3),
				EndTime:   safeGet(cols, 4),
				Hours:     parseNumber(safeGet(cols, 5)),
				Notes:     safeGet(cols, 6),
			},
			ProjectID: safeGet(cols, 1),
		})
	}

	materials, err := c.readRows(ctx, c.materialsSheet, "A:F")
	if err != nil {
		return nil, err
	}
	for _, cols := range materials {
		data.Materials = append(data.Materials, mirror.MaterialRecord{
			MaterialEntry: core.MaterialEntry{
				ID:       safeGet(cols, 0),
				Date:     safeGet(cols, 2),
				Name:     safeGet(cols, 3),
				Quantity: safeGet(cols, 4),
				Amount:   parseNumber(safeGet(cols, 5)),
			},
			ProjectID: safeGet(cols, 1),
		})
	}

	return data, nil
}

func (c *Client) readRows(ctx context.Context, sheetName, span string) ([][]string, error) {
	rng := fmt.Sprintf("%s!%s", sheetName, span)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	var out [][]string
	for _, row := range resp.Values {
		cols := toStrings(row)
		if len(cols) == 0 || strings.TrimSpace(cols[0]) == "" {
			continue
		}
		out = append(out, cols)
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
