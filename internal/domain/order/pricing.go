package order

import "github.com/shopspring/decimal"

// comissão e lucro usam aritmética decimal exata; arredondamento para duas
// casas acontece apenas na borda de apresentação (DTOs)

// TotalQtd retorna a soma das quantidades de todas as fontes de compra
func (it *OrderItem) TotalQtd() decimal.Decimal {
	total := decimal.Zero
	for _, f := range it.FontesCompra {
		total = total.Add(f.Quantidade)
	}
	return total
}

// TotalCusto retorna o custo total de compra: Σ quantidade × preço unitário
func (it *OrderItem) TotalCusto() decimal.Decimal {
	total := decimal.Zero
	for _, f := range it.FontesCompra {
		total = total.Add(f.Quantidade.Mul(f.PrecoUnitario))
	}
	return total
}

// TotalFrete retorna a soma dos fretes de todas as fontes de compra
func (it *OrderItem) TotalFrete() decimal.Decimal {
	total := decimal.Zero
	for _, f := range it.FontesCompra {
		total = total.Add(f.Frete)
	}
	return total
}

// QuantidadeComprada retorna o ajuste manual quando presente, senão a soma
// das quantidades das fontes de compra
func (it *OrderItem) QuantidadeComprada() decimal.Decimal {
	if it.QuantidadeCompradaManual != nil {
		return *it.QuantidadeCompradaManual
	}
	return it.TotalQtd()
}

// QtdRestante retorna quantidade necessária menos quantidade comprada.
// Valor positivo indica item faltante; negativo indica excedente, que
// alimenta o ledger de estoque.
func (it *OrderItem) QtdRestante() decimal.Decimal {
	return it.Quantidade.Sub(it.QuantidadeComprada())
}

// Excedente retorna o excesso de quantidade comprada sobre a necessária,
// nunca negativo
func (it *OrderItem) Excedente() decimal.Decimal {
	exc := it.QuantidadeComprada().Sub(it.Quantidade)
	if exc.IsNegative() {
		return decimal.Zero
	}
	return exc
}

// Faltante retorna a quantidade ainda não comprada, nunca negativa
func (it *OrderItem) Faltante() decimal.Decimal {
	falta := it.QtdRestante()
	if falta.IsNegative() {
		return decimal.Zero
	}
	return falta
}

// TotalVenda retorna preço de venda × quantidade necessária
func (it *OrderItem) TotalVenda() decimal.Decimal {
	return it.PrecoVenda.Mul(it.Quantidade)
}

// LucroLiquido calcula o lucro líquido do item:
// preço_venda × quantidade − custo total − frete de compra − imposto −
// frete de envio. Significativo apenas a partir do status comprado.
func (it *OrderItem) LucroLiquido() decimal.Decimal {
	return it.TotalVenda().
		Sub(it.TotalCusto()).
		Sub(it.TotalFrete()).
		Sub(it.Imposto).
		Sub(it.FreteEnvio)
}

// LucroLiquidoTotal soma o lucro líquido dos itens já comprados do pedido
func (po *PurchaseOrder) LucroLiquidoTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range po.Items {
		if po.Items[i].Status.ElegivelEstoque() {
			total = total.Add(po.Items[i].LucroLiquido())
		}
	}
	return total
}
