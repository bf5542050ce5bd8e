package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func importedProduct(purchaseUSD string) *entity.Product {
	return &entity.Product{
		ID:               "p-calan",
		Code:             "IMP-001",
		BusinessEntity:   entity.EntityWayra,
		Channel:          entity.ChannelCALAN,
		PurchasePrice:    dec(purchaseUSD),
		PurchaseCurrency: entity.CurrencyUSD,
	}
}

func nationalProduct(purchaseCOP string) *entity.Product {
	return &entity.Product{
		ID:               "p-eni",
		Code:             "NAC-001",
		BusinessEntity:   entity.EntityWayra,
		Channel:          entity.ChannelENI,
		PurchasePrice:    dec(purchaseCOP),
		PurchaseCurrency: entity.CurrencyCOP,
	}
}

// Escenario de referencia: compra 10 USD, tasa 4000, cantidad 2, venta 50000.
// Costo convertido de la línea = 10×4000×2 = 80000; ganancia = 100000−80000.
func TestLineProfit_ProductoImportadoUsaTasaDeCambio(t *testing.T) {
	p := importedProduct("10")

	profit := pricing.LineProfit(p, dec("2"), dec("50000"), dec("4000"))

	assert.True(t, profit.Equal(dec("20000")),
		"ganancia esperada 20000, obtenida %s", profit)
}

func TestLineProfit_ProductoNacionalIgnoraTasa(t *testing.T) {
	p := nationalProduct("30000")

	// La tasa no debe afectar productos comprados en COP.
	profit := pricing.LineProfit(p, dec("3"), dec("45000"), dec("4000"))

	assert.True(t, profit.Equal(dec("45000")),
		"(45000−30000)×3 = 45000, obtenida %s", profit)
}

func TestConvertedCost(t *testing.T) {
	assert.True(t, pricing.ConvertedCost(importedProduct("12.5"), dec("4000")).Equal(dec("50000")))
	assert.True(t, pricing.ConvertedCost(nationalProduct("9900"), dec("4000")).Equal(dec("9900")))
}

func TestExchangeRate_FallbackCuatroMil(t *testing.T) {
	empty := pricing.NewSettings(nil)
	assert.True(t, empty.ExchangeRate().Equal(dec("4000")),
		"sin configuración la tasa debe ser 4000")

	invalid := pricing.NewSettings(map[string]string{pricing.KeyTasaUSDCOP: "no-numérico"})
	assert.True(t, invalid.ExchangeRate().Equal(dec("4000")),
		"valor no numérico cae al fallback")

	zero := pricing.NewSettings(map[string]string{pricing.KeyTasaUSDCOP: "0"})
	assert.True(t, zero.ExchangeRate().Equal(dec("4000")),
		"tasa cero o negativa cae al fallback")

	set := pricing.NewSettings(map[string]string{pricing.KeyTasaUSDCOP: "4350"})
	assert.True(t, set.ExchangeRate().Equal(dec("4350")))
}

func TestComputePrices_MargenSobreCostoConvertido(t *testing.T) {
	s := pricing.NewSettings(map[string]string{
		pricing.KeyTasaUSDCOP:       "4000",
		pricing.KeyWayraMargenCALAN: "40",
		pricing.KeyWayraDescuento:   "10",
	})
	p := importedProduct("10")

	prices := pricing.ComputePrices(p, s)

	// costo 40000 × 1.40 = 56000; mayorista 56000 × 0.90 = 50400.
	assert.True(t, prices.Sale.Equal(dec("56000")), "venta: %s", prices.Sale)
	assert.True(t, prices.Wholesale.Equal(dec("50400")), "mayorista: %s", prices.Wholesale)
	assert.True(t, prices.Retail.Equal(prices.Sale), "detal igual a venta")
}

// Subir WAYRA_MARGEN_ENI de 35 a 40 produce venta = compra × 1.40.
func TestComputePrices_CambioDeMargenENI(t *testing.T) {
	p := nationalProduct("100000")

	before := pricing.ComputePrices(p, pricing.NewSettings(map[string]string{
		pricing.KeyWayraMargenENI: "35",
	}))
	require.True(t, before.Sale.Equal(dec("135000")))

	after := pricing.ComputePrices(p, pricing.NewSettings(map[string]string{
		pricing.KeyWayraMargenENI: "40",
	}))
	assert.True(t, after.Sale.Equal(dec("140000")),
		"margen 40%% debe producir 140000, obtenido %s", after.Sale)
}

func TestMarginFor_SeleccionPorEntidadYCanal(t *testing.T) {
	s := pricing.NewSettings(map[string]string{
		pricing.KeyWayraMargenENI:       "35",
		pricing.KeyWayraMargenCALAN:     "45",
		pricing.KeyTorniMargenRepuestos: "25",
	})

	assert.True(t, s.MarginFor(entity.EntityWayra, entity.ChannelENI).Equal(dec("35")))
	assert.True(t, s.MarginFor(entity.EntityWayra, entity.ChannelCALAN).Equal(dec("45")))
	// TORNI usa su margen único sin importar el canal.
	assert.True(t, s.MarginFor(entity.EntityTorni, entity.ChannelENI).Equal(dec("25")))
	assert.True(t, s.MarginFor(entity.EntityTorni, entity.ChannelCALAN).Equal(dec("25")))
}

func TestGrowthPercent(t *testing.T) {
	assert.True(t, pricing.GrowthPercent(dec("150"), dec("100")).Equal(dec("50")))
	assert.True(t, pricing.GrowthPercent(dec("80"), dec("100")).Equal(dec("-20")))
	// Denominador cero nunca produce NaN/Inf: devuelve cero.
	assert.True(t, pricing.GrowthPercent(dec("150"), decimal.Zero).IsZero())
}
