// Package catalog holds the built-in game content: level thresholds, the
// badge catalog, the virtual stock listing, and the side-hustle business and
// upgrade tables. This is static data; everything dynamic lives in sqlite.
package catalog

import "github.com/benjisbeans/kapaiputea-app/internal/domain"

// ─── Levels ─────────────────────────────────────────────────────────────────

// LevelThresholds is the cumulative XP needed for each level.
// Index 0 = level 1. Strictly increasing, first entry 0.
var LevelThresholds = []int{
	0,     // Level 1 (starting)
	100,   // Level 2
	300,   // Level 3
	600,   // Level 4
	1000,  // Level 5
	1500,  // Level 6
	2200,  // Level 7
	3000,  // Level 8
	4000,  // Level 9
	5200,  // Level 10
	6500,  // Level 11
	8000,  // Level 12
	10000, // Level 13
	12500, // Level 14
	15500, // Level 15 (max)
}

// LevelNames pairs 1:1 with LevelThresholds.
var LevelNames = []string{
	"Money Newbie",      // 1
	"Penny Pincher",     // 2
	"Cash Curious",      // 3
	"Budget Beginner",   // 4
	"Savings Starter",   // 5
	"Finance Fan",       // 6
	"Money Maker",       // 7
	"Wealth Builder",    // 8
	"Investment Intern", // 9
	"Portfolio Pro",     // 10
	"Market Master",     // 11
	"Finance Guru",      // 12
	"Money Mogul",       // 13
	"Wealth Wizard",     // 14
	"Ka Pai Legend",     // 15
}

// ─── Badges ─────────────────────────────────────────────────────────────────

func intp(v int) *int { return &v }

// Badges is the full badge catalog, evaluated in declaration order.
var Badges = []domain.Badge{
	{
		ID: "first-steps", Name: "First Steps", Emoji: "👟",
		Description: "Complete your first lesson",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaLessonsCompleted, Threshold: intp(1)},
		XPBonus:     10,
	},
	{
		ID: "lesson-five", Name: "High Five", Emoji: "🖐️",
		Description: "Complete 5 lessons",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaLessonsCompleted, Threshold: intp(5)},
		XPBonus:     25,
	},
	{
		ID: "lesson-twenty", Name: "Scholar", Emoji: "🎓",
		Description: "Complete 20 lessons",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaLessonsCompleted, Threshold: intp(20)},
		XPBonus:     100,
	},
	{
		ID: "module-master", Name: "Module Master", Emoji: "📦",
		Description: "Finish a whole module",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaModulesCompleted, Threshold: intp(1)},
		XPBonus:     50,
	},
	{
		ID: "budgeting-boss", Name: "Budgeting Boss", Emoji: "🧾",
		Description: "Finish the budgeting module",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaModuleCompleted, ModuleSlug: "budgeting-101"},
		XPBonus:     75,
	},
	{
		ID: "streak-three", Name: "On a Roll", Emoji: "🔥",
		Description: "3-day learning streak",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaStreakDays, Threshold: intp(3)},
		XPBonus:     30,
	},
	{
		ID: "streak-seven", Name: "Week Warrior", Emoji: "⚔️",
		Description: "7-day learning streak",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaStreakDays, Threshold: intp(7)},
		XPBonus:     75,
	},
	{
		ID: "streak-thirty", Name: "Monthly Machine", Emoji: "💪",
		Description: "30-day learning streak",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaStreakDays, Threshold: intp(30)},
		XPBonus:     300,
	},
	{
		ID: "xp-thousand", Name: "XP Collector", Emoji: "⭐",
		Description: "Earn 1,000 XP",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaTotalXP, Threshold: intp(1000)},
		XPBonus:     50,
	},
	{
		ID: "xp-five-thousand", Name: "XP Hoarder", Emoji: "🌟",
		Description: "Earn 5,000 XP",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaTotalXP, Threshold: intp(5000)},
		XPBonus:     150,
	},
	{
		ID: "quiz-done", Name: "Know Thyself", Emoji: "🪞",
		Description: "Complete the onboarding quiz",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaQuizCompleted},
		XPBonus:     20,
	},
	{
		ID: "triple-day", Name: "Triple Threat", Emoji: "🎯",
		Description: "Complete 3 lessons in one day",
		Criteria:    domain.BadgeCriteria{Type: domain.CriteriaLessonsInDay, Threshold: intp(3)},
		XPBonus:     40,
	},
}

// BadgeByID looks up a badge in the catalog. Returns nil if absent.
func BadgeByID(id string) *domain.Badge {
	for i := range Badges {
		if Badges[i].ID == id {
			return &Badges[i]
		}
	}
	return nil
}

// ─── Virtual Stocks ─────────────────────────────────────────────────────────

// Stocks is the built-in virtual market listing. Prices are fully derived
// from these seeds; see the market package.
var Stocks = []domain.StockSeed{
	{Symbol: "KIWI", Name: "Kiwi Air", Sector: "Travel", Emoji: "✈️", BasePrice: 45.00, Volatility: 1.2},
	{Symbol: "FERN", Name: "Silver Fern Farms", Sector: "Agriculture", Emoji: "🌿", BasePrice: 28.50, Volatility: 0.8},
	{Symbol: "HAKA", Name: "Haka Sportswear", Sector: "Retail", Emoji: "👟", BasePrice: 112.00, Volatility: 1.5},
	{Symbol: "PAUA", Name: "Paua Tech", Sector: "Technology", Emoji: "💻", BasePrice: 230.00, Volatility: 2.0},
	{Symbol: "MOA", Name: "Moa Brewing Co", Sector: "Food & Drink", Emoji: "🍺", BasePrice: 18.75, Volatility: 1.0},
	{Symbol: "TUI", Name: "Tui Energy", Sector: "Energy", Emoji: "⚡", BasePrice: 64.20, Volatility: 0.6},
	{Symbol: "KORU", Name: "Koru Bank", Sector: "Finance", Emoji: "🏦", BasePrice: 88.00, Volatility: 0.5},
	{Symbol: "WEKA", Name: "Weka Games", Sector: "Entertainment", Emoji: "🎮", BasePrice: 34.90, Volatility: 1.8},
}

// StockBySymbol looks up a listed stock. Returns nil if absent.
func StockBySymbol(symbol string) *domain.StockSeed {
	for i := range Stocks {
		if Stocks[i].Symbol == symbol {
			return &Stocks[i]
		}
	}
	return nil
}

// ─── Side Hustle ────────────────────────────────────────────────────────────

// BusinessTypes are the startable side hustles.
var BusinessTypes = []domain.BusinessType{
	{ID: "food-truck", Name: "Food Truck", Emoji: "🚚", BaseRevenue: 50, BaseCost: 10, Description: "Serve up kai on wheels"},
	{ID: "lawn-care", Name: "Lawn Care", Emoji: "🌿", BaseRevenue: 40, BaseCost: 5, Description: "Mow lawns, stack cash"},
	{ID: "online-store", Name: "Online Store", Emoji: "🛒", BaseRevenue: 60, BaseCost: 20, Description: "Sell products to the world"},
	{ID: "tutoring", Name: "Tutoring", Emoji: "📚", BaseRevenue: 70, BaseCost: 15, Description: "Help others learn, get paid"},
	{ID: "car-detailing", Name: "Car Detailing", Emoji: "🚗", BaseRevenue: 55, BaseCost: 10, Description: "Make rides shine"},
}

// Upgrades are the purchasable business improvements.
var Upgrades = []domain.Upgrade{
	{ID: "marketing", Name: "Marketing", Emoji: "📢", Description: "Get the word out", RevenueBoost: 20, CostIncrease: 0, LevelCosts: []float64{500, 1500, 4000}},
	{ID: "equipment", Name: "Better Gear", Emoji: "🔧", Description: "Work smarter, not harder", RevenueBoost: 30, CostIncrease: 5, LevelCosts: []float64{800, 2000, 5000}},
	{ID: "staff", Name: "Hire Staff", Emoji: "👥", Description: "Build your team", RevenueBoost: 50, CostIncrease: 15, LevelCosts: []float64{1200, 3000, 7500}},
	{ID: "location", Name: "Better Location", Emoji: "📍", Description: "Prime spot, more customers", RevenueBoost: 40, CostIncrease: 5, LevelCosts: []float64{2000, 5000, 12000}},
	{ID: "branding", Name: "Branding", Emoji: "✨", Description: "Look professional", RevenueBoost: 25, CostIncrease: 0, LevelCosts: []float64{1000, 2500, 6000}},
}

// BusinessTypeByID looks up a business template. Returns nil if absent.
func BusinessTypeByID(id string) *domain.BusinessType {
	for i := range BusinessTypes {
		if BusinessTypes[i].ID == id {
			return &BusinessTypes[i]
		}
	}
	return nil
}

// UpgradeByID looks up an upgrade definition. Returns nil if absent.
func UpgradeByID(id string) *domain.Upgrade {
	for i := range Upgrades {
		if Upgrades[i].ID == id {
			return &Upgrades[i]
		}
	}
	return nil
}

// Lessons is the built-in lesson index. A real content pipeline would load
// this from the module files; the gamification engine only needs identity
// and rewards.
var Lessons = []domain.Lesson{
	{ID: "b101-01", Slug: "what-is-a-budget", Title: "What Is a Budget?", ModuleSlug: "budgeting-101", XPReward: 50},
	{ID: "b101-02", Slug: "needs-vs-wants", Title: "Needs vs Wants", ModuleSlug: "budgeting-101", XPReward: 50},
	{ID: "b101-03", Slug: "fifty-thirty-twenty", Title: "The 50/30/20 Rule", ModuleSlug: "budgeting-101", XPReward: 75},
	{ID: "s101-01", Slug: "why-save", Title: "Why Save At All?", ModuleSlug: "saving-101", XPReward: 50},
	{ID: "s101-02", Slug: "emergency-funds", Title: "Emergency Funds", ModuleSlug: "saving-101", XPReward: 60},
	{ID: "s101-03", Slug: "compound-interest", Title: "Compound Interest", ModuleSlug: "saving-101", XPReward: 80},
	{ID: "i101-01", Slug: "what-is-a-share", Title: "What Is a Share?", ModuleSlug: "investing-101", XPReward: 60},
	{ID: "i101-02", Slug: "risk-and-return", Title: "Risk and Return", ModuleSlug: "investing-101", XPReward: 75},
	{ID: "i101-03", Slug: "diversification", Title: "Don't Put All Eggs in One Basket", ModuleSlug: "investing-101", XPReward: 75},
}

// LessonByID looks up a lesson. Returns nil if absent.
func LessonByID(id string) *domain.Lesson {
	for i := range Lessons {
		if Lessons[i].ID == id {
			return &Lessons[i]
		}
	}
	return nil
}

// LessonsInModule returns all lessons belonging to a module, catalog order.
func LessonsInModule(moduleSlug string) []domain.Lesson {
	var out []domain.Lesson
	for _, l := range Lessons {
		if l.ModuleSlug == moduleSlug {
			out = append(out, l)
		}
	}
	return out
}
