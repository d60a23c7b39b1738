package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"hostelcare/backend/internal/complaint"
	"hostelcare/backend/internal/config"
	"hostelcare/backend/internal/roster"
	"hostelcare/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const usage = `Usage: admin <command> [args]

  add-admin <name> <roll_number>
  add-member <name> <category> [phone]
  deactivate-member <member_id>
  link-telegram <user_id> <chat_id>
  timeline <complaint_id>`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.FromEnv()
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI
	ctx := context.Background()

	command, args := os.Args[1], os.Args[2:]
	switch command {
	case "add-admin":
		requireArgs(args, 2, "add-admin <name> <roll_number>")
		user, password, err := roster.NewService(storageSvc, storageSvc).AddAdmin(ctx, args[0], args[1])
		if err != nil {
			log.Fatalf("Error adding admin: %v", err)
		}
		fmt.Printf("Admin %s created (id %s). Password: %s\n", user.RollNumber, user.ID, password)
	case "add-member":
		requireArgs(args, 2, "add-member <name> <category> [phone]")
		in := roster.MemberInput{Name: args[0], Category: args[1]}
		if len(args) > 2 {
			in.Phone = args[2]
		}
		member, err := roster.NewService(storageSvc, storageSvc).AddMember(ctx, in)
		if err != nil {
			log.Fatalf("Error adding member: %v", err)
		}
		fmt.Printf("Member %s (%s) created with id %s.\n", member.Name, member.Category, member.ID)
	case "deactivate-member":
		requireArgs(args, 1, "deactivate-member <member_id>")
		if err := storageSvc.SetMemberActive(ctx, args[0], false); err != nil {
			log.Fatalf("Error deactivating member: %v", err)
		}
		fmt.Printf("Member %s has been deactivated.\n", args[0])
	case "link-telegram":
		requireArgs(args, 2, "link-telegram <user_id> <chat_id>")
		chatID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Println("Invalid chat ID. Please provide an integer.")
			os.Exit(1)
		}
		if err := storageSvc.UpdateUserTelegramChat(ctx, args[0], chatID); err != nil {
			log.Fatalf("Error linking Telegram chat: %v", err)
		}
		fmt.Printf("User %s will receive notifications in chat %d.\n", args[0], chatID)
	case "timeline":
		requireArgs(args, 1, "timeline <complaint_id>")
		if err := printTimeline(ctx, storageSvc, args[0]); err != nil {
			log.Fatalf("Error reading timeline: %v", err)
		}
	default:
		fmt.Println("Unknown command")
		fmt.Println(usage)
		os.Exit(1)
	}
}

func requireArgs(args []string, n int, form string) {
	if len(args) < n {
		fmt.Println("Usage: admin " + form)
		os.Exit(1)
	}
}

func printTimeline(ctx context.Context, s *storage.Service, complaintID string) error {
	c, err := s.GetComplaint(ctx, complaintID)
	if err != nil {
		return err
	}
	fmt.Printf("%s / %s  [%s]\n", c.Category, c.SubCategory, c.CurrentStatus)

	b := &complaint.TimelineBuilder{Users: s, Members: s}
	for e := range b.Build(ctx, c) {
		line := fmt.Sprintf("%s  %-11s", e.Timestamp.Format("2006-01-02 15:04"), e.Status)
		if e.UpdatedBy != nil {
			line += "  by " + e.UpdatedBy.Name
		}
		if e.AssignedTo != nil {
			line += "  -> " + e.AssignedTo.Name
		}
		if e.Note != "" {
			line += "  " + strconv.Quote(e.Note)
		}
		fmt.Println(line)
	}
	return nil
}
