package models

import "time"

// Per100g holds nutrient densities per 100 grams of a product.
type Per100g struct {
	CaloriesPer100g float64 `db:"calories_per_100g" json:"calories_per_100g"`
	ProteinPer100g  float64 `db:"protein_g_per_100g" json:"protein_g_per_100g"`
	CarbsPer100g    float64 `db:"carbs_g_per_100g" json:"carbs_g_per_100g"`
	FatPer100g      float64 `db:"fat_g_per_100g" json:"fat_g_per_100g"`
}

// For scales the densities to the given quantity in grams.
func (p Per100g) For(grams float64) Totals {
	factor := grams / 100.0
	return Totals{
		Calories: p.CaloriesPer100g * factor,
		Protein:  p.ProteinPer100g * factor,
		Carbs:    p.CarbsPer100g * factor,
		Fat:      p.FatPer100g * factor,
	}
}

type Product struct {
	ID     int64  `db:"id" json:"id"`
	UserID int64  `db:"user_id" json:"user_id"`
	Name   string `db:"name" json:"name"`
	Per100g
}

type Meal struct {
	ID     int64     `db:"id" json:"id"`
	UserID int64     `db:"user_id" json:"user_id"`
	Date   time.Time `db:"date" json:"date"`
	Name   string    `db:"name" json:"name"`
}

type Consumption struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	MealID    int64     `db:"meal_id" json:"meal_id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	QuantityG float64   `db:"quantity_g" json:"quantity_g"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ConsumptionDetail is a consumption joined with its product and meal.
type ConsumptionDetail struct {
	Consumption
	Per100g
	ProductName string    `db:"product_name" json:"product_name"`
	MealName    string    `db:"meal_name" json:"meal_name"`
	MealDate    time.Time `db:"meal_date" json:"meal_date"`
}

func (d *ConsumptionDetail) Totals() Totals {
	return d.For(d.QuantityG)
}
