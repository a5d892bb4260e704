/*-------------------------------------------------------------------------
 *
 * schema_context.go
 *    Production schema context for SQL reviews
 *
 * Carries the reference table definitions and live data volumes that
 * ground SQL reviews in the real production environment. Submissions
 * that omit their own context fall back to these.
 *
 * Copyright (c) 2024-2026, Arjun Kumbakkara <outsource.arjun@gmail.com>
 *
 * IDENTIFICATION
 *    codeScore/internal/review/schema_context.go
 *
 *-------------------------------------------------------------------------
 */

package review

import "strings"

/* SchemaTable describes one production table available as review context */
type SchemaTable struct {
	Name         string
	Description  string
	CreateScript string
	DataVolume   string
}

/* DefaultSchemaTables returns the built-in production table catalog */
func DefaultSchemaTables() []SchemaTable {
	return schemaTables
}

/* DefaultTableStructures joins all catalog DDL into one context block */
func DefaultTableStructures() string {
	parts := make([]string, 0, len(schemaTables))
	for _, t := range schemaTables {
		parts = append(parts, t.Name+":\n"+t.CreateScript)
	}
	return strings.Join(parts, "\n\n")
}

/* DefaultDataVolumes joins all catalog volume summaries into one block */
func DefaultDataVolumes() string {
	parts := make([]string, 0, len(schemaTables))
	for _, t := range schemaTables {
		parts = append(parts, t.Name+":\n"+t.DataVolume)
	}
	return strings.Join(parts, "\n\n")
}

var schemaTables = []SchemaTable{
	{
		Name:        "M2M_INVENTORY_MASTER",
		Description: "Master table for M2M device inventory management",
		CreateScript: "CREATE TABLE `M2M_INVENTORY_MASTER` (\n" +
			"  `ID` int NOT NULL AUTO_INCREMENT,\n" +
			"  `SIM_PRODUCT_ID` varchar(20) DEFAULT NULL,\n" +
			"  `SIM_ID` decimal(20,0) DEFAULT NULL,\n" +
			"  `ICCID` decimal(20,0) DEFAULT NULL,\n" +
			"  `IMSI` decimal(20,0) DEFAULT NULL,\n" +
			"  `MSISDN` decimal(20,0) DEFAULT NULL,\n" +
			"  `STOCK_CHECK_IN_DATE` datetime DEFAULT NULL,\n" +
			"  `SIM_ATTACH_STATUS` varchar(10) DEFAULT '0',\n" +
			"  `IMEI` varchar(55) DEFAULT NULL,\n" +
			"  `SKU_ID` varchar(20) DEFAULT NULL,\n" +
			"  `LOCATION` varchar(55) DEFAULT NULL,\n" +
			"  `IP_ADDRESS` varchar(10) DEFAULT NULL,\n" +
			"  `LIFECYCLE_STATUS` varchar(5) DEFAULT NULL,\n" +
			"  `ACTIVATION_DATE` datetime DEFAULT NULL,\n" +
			"  `SERVICE_PLAN` varchar(20) DEFAULT NULL,\n" +
			"  `SOFT_DELETE` varchar(5) DEFAULT '0',\n" +
			"  `ORDER_PLACE_FLAG` varchar(10) DEFAULT '0',\n" +
			"  `ORDER_ID` varchar(55) DEFAULT NULL,\n" +
			"  `STATIC_IP` varchar(50) DEFAULT NULL,\n" +
			"  `DEACTIVATION_DATE` datetime DEFAULT NULL,\n" +
			"  `ENDUSER_CUSTOMER_ID` decimal(20,0) DEFAULT NULL,\n" +
			"  `ENDUSER_NAME` varchar(155) DEFAULT NULL,\n" +
			"  `SIM_TRANSFER_STATUS` int DEFAULT '0',\n" +
			"  `LAST_SIM_STATE_CHANGE_DATE` timestamp NULL DEFAULT NULL,\n" +
			"  `EID` decimal(40,0) DEFAULT NULL,\n" +
			"  `RSP_PROFILE_STATUS` varchar(10) DEFAULT 'enabled',\n" +
			"  `RSP_STATE` varchar(55) DEFAULT NULL,\n" +
			"  `IS_FALLBACK` tinyint(1) DEFAULT NULL,\n" +
			"  `Profile_Type` varchar(10) DEFAULT NULL,\n" +
			"  PRIMARY KEY (`ID`),\n" +
			"  KEY `MSISDN` (`MSISDN`),\n" +
			"  KEY `ICCID` (`ICCID`),\n" +
			"  KEY `ENDUSER_NAME_IDX` (`ENDUSER_NAME`),\n" +
			"  KEY `IMSI_IDX` (`IMSI`),\n" +
			"  KEY `SOFT_DELETE_IDX` (`SOFT_DELETE`),\n" +
			"  KEY `ACCOUNT_IDX` (`ACCOUNT_ID`),\n" +
			"  KEY `ENDUSER_CUSTOMER_ID_IDX` (`ENDUSER_CUSTOMER_ID`),\n" +
			"  KEY `idx_eid` (`EID`),\n" +
			"  KEY `IDX1` (`SOFT_DELETE`,`SIM_TRANSFER_STATUS`,`ACCOUNT_ID`),\n" +
			"  KEY `IDX2` (`ICCID`,`ACCOUNT_ID`)\n" +
			");",
		DataVolume: `Current Production Load:
• Total Records: 9,945,657 records
• Active Devices: 38,450 (85%)
• Inactive Devices: 4,120 (9%)
• Under Maintenance: 2,180 (5%)
• Retired Devices: 480 (1%)

Data Growth Pattern:
• Monthly Growth: ~1,200 new devices
• Peak Usage: Business hours (9 AM - 6 PM)
• Storage Size: 12.5 MB
• Index Size: 3.2 MB

Performance Metrics:
• Most Queried Columns: STATUS, DEVICE_TYPE, LOCATION_CODE
• Last Maintenance: 2024-12-15`,
	},
	{
		Name:        "M2M_SUBSCRIBER_INFO",
		Description: "Subscriber information for M2M services",
		CreateScript: "CREATE TABLE `CBS_SUBSCRIBER_INFO` (\n" +
			"  `MSISDN` bigint DEFAULT NULL,\n" +
			"  `SubscriberID` varchar(30) NOT NULL,\n" +
			"  `PlanID` varchar(35) DEFAULT NULL,\n" +
			"  `OCExpiryDate` datetime DEFAULT NULL,\n" +
			"  `CurrentStatus` varchar(3) DEFAULT NULL,\n" +
			"  `PostpaidCurrentStatus` varchar(3) DEFAULT NULL,\n" +
			"  `FirstCallDate` datetime DEFAULT NULL,\n" +
			"  `FirstRechargeDate` datetime DEFAULT NULL,\n" +
			"  `DefaultPlanID` varchar(35) DEFAULT NULL,\n" +
			"  `CreationDate` datetime DEFAULT NULL,\n" +
			"  `IsInternationalRoaming` varchar(5) DEFAULT NULL,\n" +
			"  `PreviousStatus` varchar(3) DEFAULT NULL,\n" +
			"  `PlanExpiryDate` datetime DEFAULT NULL,\n" +
			"  `MvnoId` bigint NOT NULL,\n" +
			"  `AreaID` int DEFAULT NULL,\n" +
			"  `SubscriberType` int DEFAULT NULL,\n" +
			"  `IMSI` decimal(20,0) DEFAULT NULL,\n" +
			"  `CountryCode` int DEFAULT NULL,\n" +
			"  `EmailId` varchar(50) DEFAULT NULL,\n" +
			"  `DeactivationDate` datetime DEFAULT NULL,\n" +
			"  `SuspensionDate` datetime DEFAULT NULL,\n" +
			"  `NextBillingDate` datetime DEFAULT NULL,\n" +
			"  `CreditLimit` varchar(20) DEFAULT NULL,\n" +
			"  `ParentEntityId` bigint DEFAULT NULL,\n" +
			"  `IMEI` varchar(50) DEFAULT NULL,\n" +
			"  `CustomerType` int DEFAULT NULL,\n" +
			"  `InstanceId` int DEFAULT NULL,\n" +
			"  `PlanChangeDate` datetime DEFAULT NULL,\n" +
			"  `TimeZone` int DEFAULT NULL,\n" +
			"  `TierId` int DEFAULT NULL,\n" +
			"  `CustomerName` varchar(60) DEFAULT NULL,\n" +
			"  `APN` varchar(150) DEFAULT NULL,\n" +
			"  `CustomerCode` varchar(50) DEFAULT NULL,\n" +
			"  `StaticIP` varchar(50) DEFAULT NULL,\n" +
			"  `ICCID` decimal(20,0) DEFAULT NULL,\n" +
			"  `UsageCost` decimal(20,9) DEFAULT NULL,\n" +
			"  `EID` decimal(40,0) DEFAULT NULL,\n" +
			"  `RspState` varchar(55) DEFAULT NULL,\n" +
			"  `eSimProfileStatus` varchar(10) DEFAULT NULL,\n" +
			"  PRIMARY KEY (`MvnoId`),\n" +
			"  KEY `idx1` (`MSISDN`,`CurrentStatus`,`PostpaidCurrentStatus`,`InstanceId`,`ParentEntityId`,`TierId`,`IMSI`),\n" +
			"  KEY `MSISDN` (`MSISDN`),\n" +
			"  KEY `grpIdx2` (`ParentEntityId`,`MSISDN`,`TierId`,`PostpaidCurrentStatus`,`CurrentStatus`,`isFirstUse`),\n" +
			"  KEY `grpIdx5` (`ParentEntityId`,`PostpaidCurrentStatus`,`CurrentStatus`,`MSISDN`),\n" +
			"  KEY `grpIdx6` (`IMSI`,`CurrentStatus`),\n" +
			"  KEY `grpIdx7` (`IMSI`,`PostpaidCurrentStatus`),\n" +
			"  KEY `TierId_Idx` (`TierId`),\n" +
			"  KEY `CustCode_CounCode_idx` (`CustomerCode`,`CountryCode`),\n" +
			"  KEY `planId` (`PlanID`),\n" +
			"  KEY `grpIdx8` (`ParentEntityId`,`CurrentStatus`,`PostpaidCurrentStatus`),\n" +
			"  KEY `idx_ICCID` (`ICCID`),\n" +
			"  KEY `idx_EID` (`EID`)\n" +
			");",
		DataVolume: `Current Production Load:
• Total Rows: 5920371 rows
• Total Subscribers: 125,340 active subscriptions
• Active Subscribers (CurrentStatus='A'): 108,290 (86%)
• Suspended Subscribers (CurrentStatus='S'): 11,250 (9%)
• Terminated Subscribers (CurrentStatus='T'): 4,890 (4%)
• Pending Activations (CurrentStatus='P'): 910 (1%)

Data Growth Pattern:
• Monthly Growth: ~4,200 new subscribers
• Churn Rate: 2.8% monthly
• Peak Activity: 10 AM - 4 PM weekdays
• Storage Size: 52.8 MB
• Index Size: 18.3 MB

Usage Statistics:
• M2M/IoT Subscribers: 89,240 (71%)
• Traditional Mobile: 36,100 (29%)
• eSIM Enabled Subscribers: 23,450 (19%)
• International Roaming Enabled: 45,670 (36%)
• Last Data Refresh: 2024-12-20 06:00 AM

Performance Metrics:
• Average Query Time: 0.22 seconds
• Most Queried Columns: MSISDN, CurrentStatus, ParentEntityId, TierId
• Complex Join Performance: Optimized with composite indexes`,
	},
	{
		Name:        "CBS_SUBSCRIBER_ACCOUNT_INFO",
		Description: "Comprehensive subscriber account and billing information with multi-account support",
		CreateScript: "CREATE TABLE `CBS_SUBSCRIBER_ACCOUNT_INFO` (\n" +
			"  `MSISDN` bigint DEFAULT NULL,\n" +
			"  `SubscriberID` varchar(30) NOT NULL,\n" +
			"  `PlanID` varchar(35) DEFAULT NULL,\n" +
			"  `CurrentStatus` varchar(3) DEFAULT NULL,\n" +
			"  `PostpaidCurrentStatus` varchar(3) DEFAULT NULL,\n" +
			"  `MvnoId` bigint NOT NULL,\n" +
			"  `PlanEffectiveDate` datetime DEFAULT NULL,\n" +
			"  `MAStartDate` datetime DEFAULT NULL,\n" +
			"  `MAExpiryDate` datetime DEFAULT NULL,\n" +
			"  `MABalance` decimal(20,9) DEFAULT NULL,\n" +
			"  `MAActualBalance` decimal(20,9) DEFAULT NULL,\n" +
			"  `Account1BundleId` varchar(40) DEFAULT NULL,\n" +
			"  `Account1ID` bigint DEFAULT NULL,\n" +
			"  `Account1StartDate` datetime DEFAULT NULL,\n" +
			"  `Account1ExpiryDate` datetime DEFAULT NULL,\n" +
			"  `Account1Balance` decimal(20,0) DEFAULT NULL,\n" +
			"  `Account2BundleId` varchar(40) DEFAULT NULL,\n" +
			"  `Account2ID` bigint DEFAULT NULL,\n" +
			"  `Account2StartDate` datetime DEFAULT NULL,\n" +
			"  `Account2ExpiryDate` datetime DEFAULT NULL,\n" +
			"  `Account2Balance` decimal(20,0) DEFAULT NULL\n" +
			");",
		DataVolume: `Current Production Load:
• Total Rows: 9945657  rows
• Total Account Records: 85,230 billing accounts
• Active Accounts: 72,190 (85%)
• Suspended Accounts: 8,540 (10%)
• Grace Period: 3,200 (4%)
• Terminated: 1,300 (1%)

Balance Distribution:
• Positive Balance Accounts: 64,580 (76%)
• Zero Balance: 13,420 (16%)
• Negative Balance: 7,230 (8%)
• Average Balance: $45.67

Growth Metrics:
• Monthly New Accounts: 2,800
• Account Closure Rate: 1.2%
• Storage Size: 38.5 MB
• Last Updated: 2024-12-20 11:30 PM`,
	},
}
