package commands

import (
	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/domain/model/order"
)

// Field setters shared by the order commands. Each validates and assigns.

func setCaller(dst *access.Caller, caller access.Caller) error {
	if err := caller.Validate(); err != nil {
		return err
	}
	*dst = caller
	return nil
}

func setOrderID(dst *order.ID, id order.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	*dst = id
	return nil
}

func setItemName(dst *string, itemName string) error {
	name, err := order.NormalizeItemName(itemName)
	if err != nil {
		return err
	}
	*dst = name
	return nil
}
