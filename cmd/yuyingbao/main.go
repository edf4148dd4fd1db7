package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"yuyingbao/internal/api"
	"yuyingbao/internal/config"
	"yuyingbao/internal/models"
	"yuyingbao/internal/repository"
	"yuyingbao/internal/service"
	"yuyingbao/internal/session"
	"yuyingbao/internal/stats"
	"yuyingbao/internal/storage"
)

type app struct {
	cfg        *config.Config
	session    *session.Store
	auth       *service.AuthService
	families   *service.FamilyService
	records    *repository.RecordRepository
	statistics *service.StatisticsService
	export     *service.ExportService
}

func main() {
	// Define subcommands
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)
	babiesCmd := flag.NewFlagSet("babies", flag.ExitOnError)
	recordsCmd := flag.NewFlagSet("records", flag.ExitOnError)
	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	logoutCmd := flag.NewFlagSet("logout", flag.ExitOnError)

	// Login flags
	loginCode := loginCmd.String("code", "", "WeChat login code (required)")
	loginNickname := loginCmd.String("nickname", "", "Profile nickname")
	loginAvatar := loginCmd.String("avatar", "", "Profile avatar URL")

	// Babies flags
	babiesSelect := babiesCmd.Int64("select", 0, "Make this baby the active one")

	// Records flags
	recordsDays := recordsCmd.Int("days", 7, "How many days back to list")

	// Stats flags
	statsPeriod := statsCmd.String("period", "day", "Aggregation window: day, week or month")

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: records_YYYYMMDD_HHMMSS.json)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	a, err := initApp()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		loginCmd.Parse(os.Args[2:])
		if *loginCode == "" {
			fmt.Println("Error: -code flag is required")
			loginCmd.PrintDefaults()
			os.Exit(1)
		}
		a.handleLogin(ctx, *loginCode, *loginNickname, *loginAvatar)

	case "status":
		statusCmd.Parse(os.Args[2:])
		a.handleStatus()

	case "babies":
		babiesCmd.Parse(os.Args[2:])
		a.requireSession()
		a.handleBabies(ctx, *babiesSelect)

	case "records":
		recordsCmd.Parse(os.Args[2:])
		a.requireSession()
		a.handleRecords(ctx, *recordsDays)

	case "stats":
		statsCmd.Parse(os.Args[2:])
		a.requireSession()
		a.handleStats(ctx, *statsPeriod)

	case "export":
		exportCmd.Parse(os.Args[2:])
		a.requireSession()
		a.handleExport(ctx, *exportOutput)

	case "logout":
		logoutCmd.Parse(os.Args[2:])
		a.handleLogout()

	default:
		printUsage()
		os.Exit(1)
	}
}

func initApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	persist, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	deviceID, err := service.DeviceID(persist)
	if err != nil {
		return nil, err
	}
	sealer, err := storage.NewSealer(deviceID)
	if err != nil {
		return nil, err
	}

	sess := session.NewStore(persist, sealer)
	client := api.NewClient(cfg, sess)
	records := repository.NewRecordRepository(client)

	return &app{
		cfg:        cfg,
		session:    sess,
		auth:       service.NewAuthService(client, sess, persist),
		families:   service.NewFamilyService(client, sess, cfg),
		records:    records,
		statistics: service.NewStatisticsService(client, records, sess),
		export:     service.NewExportService(records, sess),
	}, nil
}

// requireSession restores the persisted session or exits
func (a *app) requireSession() {
	if !a.auth.Restore() {
		log.Fatal("Not signed in. Run: yuyingbao login -code <code>")
	}
}

func (a *app) handleLogin(ctx context.Context, code, nickname, avatar string) {
	user, err := a.auth.Login(ctx, code, nickname, avatar)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	fmt.Printf("Signed in as %s (id %d)\n", user.Nickname, user.ID)

	family, err := a.families.EnsureFamily(ctx)
	if err != nil {
		log.Fatalf("Failed to load family: %v", err)
	}
	if family == nil {
		fmt.Println("No family yet. Create or join one from the app.")
		return
	}
	fmt.Printf("Family: %s (invite code %s)\n", family.Name, family.InviteCode)

	if _, err := a.families.RefreshRoster(ctx); err != nil {
		log.Fatalf("Failed to load babies: %v", err)
	}
	if baby := a.session.ActiveBaby(); baby != nil {
		fmt.Printf("Active baby: %s, %s\n", baby.Name, baby.AgeText(time.Now()))
	}
}

func (a *app) handleStatus() {
	if !a.auth.Restore() {
		fmt.Println("Signed out")
		return
	}
	fmt.Println("Signed in")
	if user := a.session.User(); user != nil {
		fmt.Printf("User:   %s (id %d)\n", user.Nickname, user.ID)
	}
	if family := a.session.Family(); family != nil {
		fmt.Printf("Family: %s\n", family.Name)
	}
	if baby := a.session.ActiveBaby(); baby != nil {
		fmt.Printf("Baby:   %s, %s\n", baby.Name, baby.AgeText(time.Now()))
	}
}

func (a *app) handleBabies(ctx context.Context, selectID int64) {
	if selectID != 0 {
		baby, err := a.families.SelectBaby(ctx, selectID)
		if err != nil {
			log.Fatalf("Failed to select baby: %v", err)
		}
		fmt.Printf("Active baby: %s\n", baby.Name)
		return
	}

	babies, err := a.families.RefreshRoster(ctx)
	if err != nil {
		log.Fatalf("Failed to load babies: %v", err)
	}
	if len(babies) == 0 {
		fmt.Println("暂无数据")
		return
	}

	active := a.session.ActiveBaby()
	now := time.Now()
	for _, baby := range babies {
		marker := " "
		if active != nil && active.ID == baby.ID {
			marker = "*"
		}
		fmt.Printf("%s %d  %s  %s\n", marker, baby.ID, baby.Name, baby.AgeText(now))
	}
}

func (a *app) handleRecords(ctx context.Context, days int) {
	baby, err := a.session.RequireBaby()
	if err != nil {
		log.Fatalf("%v", err)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	records, err := a.records.FetchRange(ctx, baby.ID, start, end)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}
	if len(records) == 0 {
		fmt.Println("暂无数据")
		return
	}

	for _, record := range records {
		fmt.Printf("%s  %s %s  %s\n",
			record.HappenedAt.Local().Format("01-02 15:04"),
			record.Icon, record.Title, recordDetail(record))
	}
}

// recordDetail renders the one-line payload summary shown after the title
func recordDetail(record models.DisplayRecord) string {
	switch {
	case record.Breastfeeding != nil:
		return fmt.Sprintf("%s %d分钟", record.Breastfeeding.Side.DisplayName(), record.Breastfeeding.DurationMin)
	case record.BottleFeed != nil:
		return fmt.Sprintf("%.0fml", record.BottleFeed.AmountMl)
	case record.SolidFood != nil:
		if record.SolidFood.SolidType != "" {
			return record.SolidFood.SolidType
		}
		return record.Note
	case record.DiaperChange != nil:
		return fmt.Sprintf("%s/%s", record.DiaperChange.Texture.DisplayName(), record.DiaperChange.Color.DisplayName())
	case record.GrowthMeasure != nil:
		return fmt.Sprintf("%.1fcm %.1fkg", record.GrowthMeasure.HeightCm, record.GrowthMeasure.WeightKg)
	default:
		return record.Note
	}
}

func (a *app) handleStats(ctx context.Context, period string) {
	now := time.Now()
	var start, end time.Time
	granularity := stats.Daily

	switch period {
	case "day":
		summary, err := a.statistics.Today(ctx, now)
		if err != nil {
			log.Fatalf("Failed to load statistics: %v", err)
		}
		fmt.Printf("今日喂养 %d 次，共 %.0fml\n", summary.FeedingCount, summary.FeedingTotalMl)
		fmt.Printf("今日大便 %d 次\n", summary.DiaperCount)
		if summary.Suggestion != "" {
			fmt.Println(summary.Suggestion)
		}
		return
	case "week":
		start, end = stats.WeekWindow(now)
	case "month":
		start, end = stats.MonthWindow(now)
		granularity = stats.Weekly
	default:
		log.Fatalf("Unknown period %q, use day, week or month", period)
	}

	report, err := a.statistics.Trend(ctx, start, end, granularity)
	if err != nil {
		log.Fatalf("Failed to load statistics: %v", err)
	}

	fmt.Printf("喂养 %d 次，共 %.0fml，日均 %.0fml，平均每天 %.1f 次\n",
		report.Feeding.Count, report.Feeding.TotalMl, report.Feeding.AvgDailyMl, report.Feeding.AvgFrequency)
	fmt.Printf("大便 %d 次，正常率 %d%%\n", report.Diaper.Count, report.Diaper.NormalRate)
	if report.Growth.HasData {
		fmt.Printf("最新身高 %.1fcm，体重 %.1fkg\n", report.Growth.LatestHeightCm, report.Growth.LatestWeightKg)
	}
	for _, point := range report.FeedingSeries {
		fmt.Printf("  %s  %s\n", point.Label, point.Display)
	}
}

func (a *app) handleExport(ctx context.Context, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("records_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting records to: %s", outputPath)
	data, err := a.export.Export(ctx, outputPath, time.Now())
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Printf("Export complete! %d records written", len(data.Records))
}

func (a *app) handleLogout() {
	if err := a.auth.Logout(); err != nil {
		log.Fatalf("Logout failed: %v", err)
	}
	fmt.Println("Signed out")
}

func printUsage() {
	fmt.Println("Usage: yuyingbao <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login    Sign in with a WeChat login code")
	fmt.Println("  status   Show the current session")
	fmt.Println("  babies   List babies, or -select one")
	fmt.Println("  records  List recent care records")
	fmt.Println("  stats    Show feeding and diaper statistics")
	fmt.Println("  export   Write all records to a JSON file")
	fmt.Println("  logout   Clear the local session")
}
