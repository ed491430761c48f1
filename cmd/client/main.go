package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/logger"
	"github.com/tastybites/tastybites-client/internal/models"
	"github.com/tastybites/tastybites-client/internal/session"
	"github.com/tastybites/tastybites-client/internal/storage"
)

var (
	version   string
	buildDate string
)

// report prints the outcome of a store operation.
func report(res session.Result) {
	if res.Success {
		fmt.Println("OK")
		return
	}
	fmt.Println("Error:", res.Error)
}

// repl runs the interactive shell loop, accepting commands against the
// session store.
func repl(store *session.Store) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("tastybites> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands:")
			fmt.Println("  login <email> <password>")
			fmt.Println("  signup <name> <email> <password>")
			fmt.Println("  verify-otp <email> <otp>")
			fmt.Println("  logout")
			fmt.Println("  whoami")
			fmt.Println("  menu [category]")
			fmt.Println("  categories")
			fmt.Println("  cart")
			fmt.Println("  cart-add <itemID> <name> <price> [quantity]")
			fmt.Println("  cart-set <itemID> <quantity>")
			fmt.Println("  cart-remove <itemID>")
			fmt.Println("  favorites")
			fmt.Println("  fav-add <itemID> <name> <price>")
			fmt.Println("  fav-remove <itemID>")
			fmt.Println("  orders")
			fmt.Println("  checkout <name> <addressLine1> <city> <pincode> <paymentMethod>")
			fmt.Println("  notifications")
			fmt.Println("  notif-read <id> | notif-read-all | notif-delete <id> | notif-clear")
			fmt.Println("  exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			report(store.Login(ctx, args[1], args[2]))
		case "signup":
			if len(args) < 4 {
				fmt.Println("Usage: signup <name> <email> <password>")
				continue
			}
			report(store.Signup(ctx, args[1], args[2], args[3]))
		case "verify-otp":
			if len(args) < 3 {
				fmt.Println("Usage: verify-otp <email> <otp>")
				continue
			}
			report(store.VerifySignupOTP(ctx, args[1], args[2]))
		case "logout":
			store.Logout()
			fmt.Println("Logged out")
		case "whoami":
			user := store.User()
			if user == nil {
				fmt.Println("Not logged in")
				continue
			}
			fmt.Printf("%s <%s> role=%s orders=%d unread=%d\n",
				user.Name, user.Email, user.Role, user.OrdersCount, store.UnreadCount())
		case "menu":
			category := models.CategoryAll
			if len(args) > 1 {
				category = args[1]
			}
			items, res := store.FetchMenuByCategory(ctx, category)
			if !res.Success {
				fmt.Println("Error:", res.Error)
				continue
			}
			for _, item := range items {
				fmt.Printf("%s  %-30s %8.2f  [%s]\n", item.ID, item.Name, item.Price, item.Category)
			}
		case "categories":
			categories, res := store.FetchCategories(ctx)
			if !res.Success {
				fmt.Println("Error:", res.Error)
				continue
			}
			for _, c := range categories {
				fmt.Printf("%s  %s\n", c.ID, c.Name)
			}
		case "cart":
			for _, item := range store.Cart() {
				fmt.Printf("%s  %-30s x%d  %8.2f\n", item.ItemID, item.Name, item.Quantity, item.Price)
			}
		case "cart-add":
			if len(args) < 4 {
				fmt.Println("Usage: cart-add <itemID> <name> <price> [quantity]")
				continue
			}
			price, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				fmt.Println("Invalid price:", args[3])
				continue
			}
			quantity := 1
			if len(args) > 4 {
				if quantity, err = strconv.Atoi(args[4]); err != nil {
					fmt.Println("Invalid quantity:", args[4])
					continue
				}
			}
			item := models.MenuItem{ID: args[1], Name: args[2], Price: price}
			report(store.AddToCart(ctx, item, quantity))
		case "cart-set":
			if len(args) < 3 {
				fmt.Println("Usage: cart-set <itemID> <quantity>")
				continue
			}
			quantity, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("Invalid quantity:", args[2])
				continue
			}
			report(store.UpdateCartItem(ctx, args[1], quantity))
		case "cart-remove":
			if len(args) < 2 {
				fmt.Println("Usage: cart-remove <itemID>")
				continue
			}
			report(store.RemoveFromCart(ctx, args[1]))
		case "favorites":
			for _, fav := range store.Favorites() {
				fmt.Printf("%s  %-30s %8.2f\n", fav.ItemID, fav.Name, fav.Price)
			}
		case "fav-add":
			if len(args) < 4 {
				fmt.Println("Usage: fav-add <itemID> <name> <price>")
				continue
			}
			price, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				fmt.Println("Invalid price:", args[3])
				continue
			}
			report(store.AddToFavorites(ctx, models.MenuItem{ID: args[1], Name: args[2], Price: price}))
		case "fav-remove":
			if len(args) < 2 {
				fmt.Println("Usage: fav-remove <itemID>")
				continue
			}
			report(store.RemoveFromFavorites(ctx, args[1]))
		case "orders":
			if res := store.FetchOrders(ctx); !res.Success {
				fmt.Println("Error:", res.Error)
				continue
			}
			for _, order := range store.Orders() {
				fmt.Printf("%s  %-10s %8.2f  %s\n", order.ID, order.Status, order.TotalPrice, order.CreatedAt.Format("2006-01-02 15:04"))
			}
		case "checkout":
			if len(args) < 6 {
				fmt.Println("Usage: checkout <name> <addressLine1> <city> <pincode> <paymentMethod>")
				continue
			}
			res := store.PlaceOrder(ctx, session.OrderDetails{
				Name:          args[1],
				AddressLine1:  args[2],
				City:          args[3],
				Pincode:       args[4],
				PaymentMethod: args[5],
			})
			if res.Success {
				if last := store.LastOrder(); last != nil {
					fmt.Printf("Order %s placed, estimated delivery %s\n", last.ID, last.EstimatedDelivery)
				}
				continue
			}
			fmt.Println("Error:", res.Error)
		case "notifications":
			if res := store.FetchNotifications(ctx); !res.Success {
				fmt.Println("Error:", res.Error)
				continue
			}
			fmt.Printf("Unread: %d\n", store.UnreadCount())
			for _, n := range store.Notifications() {
				marker := " "
				if !n.Read {
					marker = "*"
				}
				fmt.Printf("%s %s  [%s] %s\n", marker, n.ID, n.Type, n.Title)
			}
		case "notif-read":
			if len(args) < 2 {
				fmt.Println("Usage: notif-read <id>")
				continue
			}
			report(store.MarkNotificationAsRead(ctx, args[1]))
		case "notif-read-all":
			report(store.MarkAllNotificationsRead(ctx))
		case "notif-delete":
			if len(args) < 2 {
				fmt.Println("Usage: notif-delete <id>")
				continue
			}
			report(store.DeleteNotification(ctx, args[1]))
		case "notif-clear":
			report(store.ClearAllNotifications(ctx))
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags, restores the persisted session, and
// starts the interactive shell.
func main() {
	var (
		baseURL     string
		sessionPath string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&sessionPath, "file", storage.DefaultFile, "path to the session file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("TastyBites Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	if err := log.Init("error"); err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}

	client := api.New(baseURL, log.Log)
	file := storage.NewSessionFile(sessionPath)
	store := session.New(client, file, log.Log)

	store.Bootstrap(context.Background())
	if user := store.User(); user != nil {
		fmt.Printf("Welcome back, %s\n", user.Name)
	}

	repl(store)
}
