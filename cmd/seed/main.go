package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ikkim/kiwimarket-backend/config"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"github.com/ikkim/kiwimarket-backend/internal/db"
)

const batchSize = 1000

func main() {
	xlsxPath := flag.String("xlsx", "", "행정구역 주소 XLSX 파일 경로")
	demoUsers := flag.Int("demo", 0, "생성할 데모 사용자 수 (사용자마다 상품 3개)")
	yes := flag.Bool("y", false, "확인 없이 바로 실행")
	flag.Parse()

	if *xlsxPath == "" && *demoUsers == 0 {
		log.Fatal("Usage: go run ./cmd/seed -xlsx <addresses.xlsx> [-demo <users>] [-y]")
	}

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if *xlsxPath != "" {
		fmt.Printf("Reading XLSX file: %s\n", *xlsxPath)
		addresses, summary, err := readAddressesFromXLSX(*xlsxPath)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
		summary.print()

		if !*yes && !confirm(fmt.Sprintf("Import %d addresses?", len(addresses))) {
			fmt.Println("Import cancelled.")
			return
		}

		addressRepo := repository.NewAddressRepository(db.GetDB())
		if err := addressRepo.UpsertBatch(addresses, batchSize); err != nil {
			log.Fatal("Failed to import addresses:", err)
		}
		fmt.Printf("Total addresses imported: %d\n", len(addresses))
	}

	if *demoUsers > 0 {
		created, err := seedDemoData(db.GetDB(), *demoUsers)
		if err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
		fmt.Printf("Demo data created: %d users, %d products\n", created.users, created.products)
	}
}

func confirm(question string) bool {
	fmt.Printf("%s (yes/no): ", question)
	var answer string
	fmt.Scanln(&answer)
	return answer == "yes" || answer == "y"
}
