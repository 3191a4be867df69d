package order

// TableGroup is one table's slice of the active (or unpaid) order feed.
type TableGroup struct {
	TableNo     string   `json:"tableNo"`
	Orders      []*Order `json:"orders"`
	TotalOrders int      `json:"totalOrders"`
	TotalAmount int      `json:"totalAmount"`
}

// MenuGroup is one menu's slice of the active order feed.
type MenuGroup struct {
	MenuName    string   `json:"menuName"`
	Orders      []*Order `json:"orders"`
	TotalOrders int      `json:"totalOrders"`
	TotalQty    int      `json:"totalQty"`
}

// GroupByTable partitions orders by table number. Group order follows the
// first occurrence of each table in the input; orders inside a group keep
// their input order. No sorting happens here.
func GroupByTable(orders []*Order) []*TableGroup {
	groups := make([]*TableGroup, 0)
	index := make(map[string]int)

	for _, o := range orders {
		i, ok := index[o.TableNo]
		if !ok {
			i = len(groups)
			index[o.TableNo] = i
			groups = append(groups, &TableGroup{
				TableNo: o.TableNo,
				Orders:  make([]*Order, 0),
			})
		}

		g := groups[i]
		g.Orders = append(g.Orders, o)
		g.TotalOrders++
		g.TotalAmount += o.Price * o.Qty
	}

	return groups
}

// GroupByMenu partitions orders by menu name with the same first-seen
// ordering as GroupByTable.
func GroupByMenu(orders []*Order) []*MenuGroup {
	groups := make([]*MenuGroup, 0)
	index := make(map[string]int)

	for _, o := range orders {
		i, ok := index[o.MenuName]
		if !ok {
			i = len(groups)
			index[o.MenuName] = i
			groups = append(groups, &MenuGroup{
				MenuName: o.MenuName,
				Orders:   make([]*Order, 0),
			})
		}

		g := groups[i]
		g.Orders = append(g.Orders, o)
		g.TotalOrders++
		g.TotalQty += o.Qty
	}

	return groups
}
