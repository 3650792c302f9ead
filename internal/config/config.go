package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix prefixes every environment override, e.g. BILLCOUNT_LOGGER_LEVEL.
const EnvPrefix = "BILLCOUNT"

// Config holds all application configuration
type Config struct {
	Office       OfficeConfig       `mapstructure:"office"`
	Jurisdiction JurisdictionConfig `mapstructure:"jurisdiction"`
	ReportTypes  ReportTypesConfig  `mapstructure:"report_types"`
	Categories   CategoriesConfig   `mapstructure:"categories"`
	Report       ReportConfig       `mapstructure:"report"`
	Ingest       IngestConfig       `mapstructure:"ingest"`
	Logger       LoggerConfig       `mapstructure:"logger"`
}

// OfficeConfig holds the text printed on the status report
type OfficeConfig struct {
	Name        string   `mapstructure:"name"`
	ReportTitle string   `mapstructure:"report_title"`
	City        string   `mapstructure:"city"`
	Signatures  []string `mapstructure:"signatures"`
}

// JurisdictionConfig decides which vouchers belong to the resident office
type JurisdictionConfig struct {
	ResidentMarker        string   `mapstructure:"resident_marker"`
	ResidentVoucherPrefix string   `mapstructure:"resident_voucher_prefix"`
	ResidentCodePrefix    string   `mapstructure:"resident_code_prefix"`
	OuterOffices          []string `mapstructure:"outer_offices"`
}

// ReportTypesConfig holds the root Name identifiers of each XML export
type ReportTypesConfig struct {
	Authorization string `mapstructure:"authorization"`
	Compilation   string `mapstructure:"compilation"`
	Sanction      string `mapstructure:"sanction"`
}

// CategoryRule maps a UserNm marker to a label
type CategoryRule struct {
	Marker string `mapstructure:"marker"`
	Label  string `mapstructure:"label"`
}

// CategoriesConfig holds the category cascade and the generic head denylist
type CategoriesConfig struct {
	Rules            []CategoryRule `mapstructure:"rules"`
	OuterMarketplace CategoryRule   `mapstructure:"outer_marketplace"`
	Uncategorized    string         `mapstructure:"uncategorized"`
	GenericHeads     []string       `mapstructure:"generic_heads"`
}

// ReportConfig holds report output settings
type ReportConfig struct {
	OutputDir      string `mapstructure:"output_dir"`
	FilenamePrefix string `mapstructure:"filename_prefix"`
	ExportXLSX     bool   `mapstructure:"export_xlsx"`
	Validate       bool   `mapstructure:"validate"`
}

// IngestConfig holds input loading settings
type IngestConfig struct {
	PDFEngine   string `mapstructure:"pdf_engine"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configuration from an optional YAML file, a local .env file and
// BILLCOUNT_* environment variables, in increasing priority.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// loadDotEnv applies a .env file if present. Variables already set win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("office.name", "PAO, GSI(NR),Lucknow")
	v.SetDefault("office.report_title", "Daily Status Report of E. Bills")
	v.SetDefault("office.city", "Lucknow")
	v.SetDefault("office.signatures", []string{
		"Assistant Accounts Officer",
		"Pre-Check Section",
		"PAO, GSI(NR), Lucknow",
	})

	v.SetDefault("jurisdiction.resident_marker", "LUCKNOW")
	v.SetDefault("jurisdiction.resident_voucher_prefix", "N")
	v.SetDefault("jurisdiction.resident_code_prefix", "")
	v.SetDefault("jurisdiction.outer_offices", []string{"DEHRADUN", "CHANDIGARH", "JAIPUR", "FARIDABAD"})

	v.SetDefault("report_types.authorization", "RptSancDig_EPaymentAuthorizationIssueRegister")
	v.SetDefault("report_types.compilation", "RptSancDig_VoucherCompilationSheet")
	v.SetDefault("report_types.sanction", "RptSancDig_SanctionDetail")

	v.SetDefault("categories.rules", []map[string]string{
		{"marker": "[GPFEIS]", "label": "Gpf"},
		{"marker": "[EIS]", "label": "Salary(eis)"},
		{"marker": "[GEM]", "label": "Gem"},
		{"marker": "[Pension]", "label": "Pension"},
	})
	v.SetDefault("categories.outer_marketplace", map[string]string{"marker": "[GEM]", "label": "Gem(Outer)"})
	v.SetDefault("categories.uncategorized", "Uncategorized")
	v.SetDefault("categories.generic_heads", []string{
		"ELECTRONIC ADVICES", "SUSPENSE", "CHEQUES", "DEFAULT", "DEDUCTIONS",
		"CONTRIBUTIONS", "GST", "PUBLIC ACCOUNT", "OTHERS",
	})

	v.SetDefault("report.output_dir", "reports")
	v.SetDefault("report.filename_prefix", "Daily_Status_Report_")
	v.SetDefault("report.export_xlsx", false)
	v.SetDefault("report.validate", true)

	v.SetDefault("ingest.pdf_engine", "native")
	v.SetDefault("ingest.max_file_size", 50<<20)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("logger.format", "console")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Office.Name == "" {
		return fmt.Errorf("office.name is required")
	}
	if len(c.Office.Signatures) != 3 {
		return fmt.Errorf("office.signatures must have exactly 3 lines, got %d", len(c.Office.Signatures))
	}

	if c.Jurisdiction.ResidentMarker == "" && c.Jurisdiction.ResidentVoucherPrefix == "" {
		return fmt.Errorf("jurisdiction needs resident_marker or resident_voucher_prefix")
	}

	if c.ReportTypes.Authorization == "" || c.ReportTypes.Compilation == "" {
		return fmt.Errorf("report_types.authorization and report_types.compilation are required")
	}

	for i, rule := range c.Categories.Rules {
		if rule.Marker == "" || rule.Label == "" {
			return fmt.Errorf("categories.rules[%d] needs marker and label", i)
		}
	}

	if c.Report.OutputDir == "" {
		return fmt.Errorf("report.output_dir is required")
	}

	switch c.Ingest.PDFEngine {
	case "fitz", "native":
	default:
		return fmt.Errorf("ingest.pdf_engine must be fitz or native, got %q", c.Ingest.PDFEngine)
	}
	if c.Ingest.MaxFileSize <= 0 {
		return fmt.Errorf("ingest.max_file_size must be positive")
	}

	return nil
}
