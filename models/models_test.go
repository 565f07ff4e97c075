package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidVIN(t *testing.T) {
	assert.True(t, IsValidVIN("1HGCM82633A004352"))
	assert.False(t, IsValidVIN("1HGCM82633A00435"), "too short")
	assert.False(t, IsValidVIN("1HGCM82633A0043521"), "too long")
	assert.False(t, IsValidVIN("1HGCM82633A00435I"), "I is not in the VIN alphabet")
	assert.False(t, IsValidVIN("1HGCM82633A00435O"), "O is not in the VIN alphabet")
	assert.False(t, IsValidVIN("1HGCM82633A00435Q"), "Q is not in the VIN alphabet")
	assert.False(t, IsValidVIN("1hgcm82633a004352"), "lowercase is the caller's problem")
}

func TestStatusPriority(t *testing.T) {
	assert.Equal(t, 0, StatusPriority(OrderStatusShipped))
	assert.Equal(t, 1, StatusPriority(OrderStatusProcessing))
	assert.Equal(t, 2, StatusPriority(OrderStatusDelivered))
	assert.Equal(t, 3, StatusPriority(OrderStatusCancelled))
	assert.Equal(t, 4, StatusPriority(OrderStatus("garbage")))
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, PaymentCard.IsValid())
	assert.True(t, PaymentCardOnReceive.IsValid())
	assert.True(t, PaymentCash.IsValid())
	assert.False(t, PaymentMethod("crypto").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}

func TestConditionIsValid(t *testing.T) {
	assert.True(t, ConditionNew.IsValid())
	assert.True(t, ConditionUsed.IsValid())
	assert.False(t, Condition("wrecked").IsValid())
}
