package catalog

import (
	"github.com/eugolor/finlit/internal/domain"
	"github.com/shopspring/decimal"
)

// defaults builds the built-in reference tables: 2026 combined federal+Ontario
// brackets, the Canadian fund lineup, and the shipped event/checkpoint/tier
// decks.
func defaults() *Catalog {
	return &Catalog{
		Funds: []domain.FundInfo{
			{
				Kind:              domain.FundTFSA,
				Name:              "TFSA",
				FullName:          "Tax-Free Savings Account",
				AnnualReturn:      decimal.NewFromFloat(0.07),
				Description:       "Any Canadian 18+ can open one. All growth and withdrawals are completely tax-free.",
				Risk:              "Low-Medium",
				BestForAges:       "18-65",
				ContributionLimit: decimal.NewFromInt(7000),
			},
			{
				Kind:              domain.FundRRSP,
				Name:              "RRSP",
				FullName:          "Registered Retirement Savings Plan",
				AnnualReturn:      decimal.NewFromFloat(0.07),
				Description:       "Contributions are tax-deductible; growth is tax-sheltered until withdrawal in retirement.",
				Risk:              "Low-Medium",
				BestForAges:       "25-65",
				ContributionLimit: decimal.NewFromInt(31560),
			},
			{
				Kind:              domain.FundFHSA,
				Name:              "FHSA",
				FullName:          "First Home Savings Account",
				AnnualReturn:      decimal.NewFromFloat(0.06),
				Description:       "For first-time buyers: deductible contributions and tax-free qualifying withdrawals.",
				Risk:              "Low-Medium",
				BestForAges:       "18-40",
				ContributionLimit: decimal.NewFromInt(8000),
			},
			{
				Kind:         domain.FundGIC,
				Name:         "GIC",
				FullName:     "Guaranteed Investment Certificate",
				AnnualReturn: decimal.NewFromFloat(0.045),
				Description:  "A fixed term at a guaranteed rate. Zero risk of losing principal.",
				Risk:         "Very Low",
				BestForAges:  "18-70",
			},
			{
				Kind:              domain.FundRESP,
				Name:              "RESP",
				FullName:          "Registered Education Savings Plan",
				AnnualReturn:      decimal.NewFromFloat(0.06),
				Description:       "Education savings with a government grant of up to 20% on the first $2,500/year.",
				Risk:              "Low-Medium",
				BestForAges:       "Parents of children 0-17",
				ContributionLimit: decimal.NewFromInt(2500),
			},
			{
				Kind:         domain.FundETF,
				Name:         "ETF",
				FullName:     "Exchange-Traded Fund",
				AnnualReturn: decimal.NewFromFloat(0.09),
				Description:  "A basket of stocks or bonds that trades like a single stock. Extremely low fees.",
				Risk:         "Medium",
				BestForAges:  "18-65",
			},
			{
				Kind:         domain.FundMutualFund,
				Name:         "Mutual Fund",
				FullName:     "Mutual Fund",
				AnnualReturn: decimal.NewFromFloat(0.06),
				Description:  "A professionally managed pool. Fees are higher than ETFs, typically 1.5-2.5% per year.",
				Risk:         "Medium",
				BestForAges:  "25-60",
			},
			{
				Kind:         domain.FundStock,
				Name:         "Stocks",
				FullName:     "Individual Stocks",
				AnnualReturn: decimal.NewFromFloat(0.10),
				Description:  "Ownership in a single company. High reward, highest volatility.",
				Risk:         "High",
				BestForAges:  "18-50",
			},
		},

		// 2026 combined federal + Ontario marginal brackets.
		TaxBrackets: []TaxBracket{
			{Ceiling: decimal.NewFromInt(53891), Rate: decimal.NewFromFloat(0.19)},
			{Ceiling: decimal.NewFromInt(58523), Rate: decimal.NewFromFloat(0.23)},
			{Ceiling: decimal.NewFromInt(107785), Rate: decimal.NewFromFloat(0.297)},
			{Ceiling: decimal.NewFromInt(117045), Rate: decimal.NewFromFloat(0.312)},
			{Ceiling: decimal.NewFromInt(150000), Rate: decimal.NewFromFloat(0.372)},
			{Ceiling: decimal.NewFromInt(181440), Rate: decimal.NewFromFloat(0.412)},
			{Ceiling: decimal.NewFromInt(220000), Rate: decimal.NewFromFloat(0.44)},
			{Ceiling: decimal.NewFromInt(258482), Rate: decimal.NewFromFloat(0.46)},
			{Ceiling: noCeiling, Rate: decimal.NewFromFloat(0.48)},
		},

		DonationRates: DonationRates{
			FirstTierAmount:  decimal.NewFromInt(200),
			FederalFirstTier: decimal.NewFromFloat(0.15),
			FederalRemainder: decimal.NewFromFloat(0.29),
			FederalTopRate:   decimal.NewFromFloat(0.33),
			TopRateThreshold: decimal.NewFromInt(235675),
			ProvFirstTier:    decimal.NewFromFloat(0.0505),
			ProvRemainder:    decimal.NewFromFloat(0.1116),
		},

		LifeEvents: []domain.LifeEvent{
			{ID: "car_repair", Title: "Car Repair", Description: "Your car broke down. Repair cost: $2,800.", Cost: decimal.NewFromInt(2800), Category: "emergency"},
			{ID: "medical_bill", Title: "Medical Bill", Description: "Unexpected dental visit. Bill: $1,200.", Cost: decimal.NewFromInt(1200), Category: "emergency"},
			{ID: "market_crash", Title: "Market Crash", Description: "The stock market dropped 30%. Stocks & ETFs plummet.", Category: "market", MarketEffect: decimal.NewFromFloat(-0.30)},
			{ID: "job_loss", Title: "Job Loss", Description: "You lost your job. No income for 3 months. Need $5,000 from savings.", Cost: decimal.NewFromInt(5000), Category: "emergency"},
			{ID: "bonus", Title: "Year-End Bonus", Description: "Great year at work! You got a $3,000 bonus.", Cost: decimal.NewFromInt(-3000), Category: "windfall"},
			{ID: "inheritance", Title: "Small Inheritance", Description: "A distant relative left you $5,000.", Cost: decimal.NewFromInt(-5000), Category: "windfall"},
			{ID: "wedding", Title: "Friend's Wedding", Description: "Flights + outfit for a wedding: $1,500.", Cost: decimal.NewFromInt(1500), Category: "social"},
			{ID: "vacation", Title: "Family Vacation", Description: "A family trip you can't say no to. Cost: $2,200.", Cost: decimal.NewFromInt(2200), Category: "lifestyle"},
			{ID: "rent_increase", Title: "Rent Increase", Description: "Landlord raised rent. Extra $200 this month.", Cost: decimal.NewFromInt(200), Category: "lifestyle"},
			{ID: "market_boom", Title: "Market Boom", Description: "Bull market! Stocks and ETFs surge 25%.", Category: "market", MarketEffect: decimal.NewFromFloat(0.25)},
			{ID: "freelance_gig", Title: "Freelance Gig", Description: "A side project paid you $1,800.", Cost: decimal.NewFromInt(-1800), Category: "windfall"},
			{ID: "phone_repair", Title: "Phone Repair", Description: "Cracked screen repair: $400.", Cost: decimal.NewFromInt(400), Category: "emergency"},
		},

		Checkpoints: []domain.Checkpoint{
			{ID: "open_tfsa", Title: "Opened a TFSA", Points: 100},
			{ID: "open_rrsp", Title: "Opened an RRSP", Points: 100},
			{ID: "open_fhsa", Title: "Opened an FHSA", Points: 100},
			{ID: "emergency_fund", Title: "Built 3-month emergency fund", Points: 200},
			{ID: "survived_crash", Title: "Survived a market crash", Points: 250},
			{ID: "net_worth_10k", Title: "Net worth: $10,000", Points: 200},
			{ID: "net_worth_50k", Title: "Net worth: $50,000", Points: 300},
			{ID: "diversified", Title: "Invested in 3+ asset types", Points: 200},
		},

		Tiers: []domain.Tier{
			{Name: "Surviving", MinPoints: 0},
			{Name: "Budget Builder", MinPoints: 200},
			{Name: "Saver", MinPoints: 500},
			{Name: "Investor", MinPoints: 800},
			{Name: "Wealth Grower", MinPoints: 1200},
			{Name: "Financial Architect", MinPoints: 1800},
		},

		Rules: Rules{
			BaseYear:              2025,
			EndingAge:             65,
			InflationRate:         decimal.NewFromFloat(0.025),
			EventProbability:      decimal.NewFromFloat(0.25),
			ContributionRate:      decimal.NewFromFloat(0.15),
			BasicPersonalAmount:   decimal.NewFromInt(16452 + 12989),
			BPACreditRate:         decimal.NewFromFloat(0.14),
			HighIncomeThreshold:   decimal.NewFromInt(100000),
			DefaultFundReturn:     decimal.NewFromFloat(0.05),
			EmergencyFundMonths:   3,
			NetWorthCheckpoint10K: decimal.NewFromInt(10000),
			NetWorthCheckpoint50K: decimal.NewFromInt(50000),
			DiversifiedFundCount:  3,
		},
	}
}
