package config

type Config struct {
	DbName          string `env:"DB_NAME" envDefault:"timesheet.sqlite"`
	ReportFileDir   string `env:"REPORT_FILE_DIR" envDefault:"./reports"`
	HttpAddr        string `env:"HTTP_ADDR" envDefault:":8080"`
	RenderTimeout   int    `env:"RENDER_TIMEOUT" envDefault:"30"`
	SpreadsheetId   string `env:"GOOGLE_SPREADSHEET_ID"`
	SheetName       string `env:"GOOGLE_SHEET_NAME" envDefault:"Timesheets"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
}
